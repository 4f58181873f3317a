package utils

import (
	"strings"
	"testing"
)

func TestChangeName_PreservesExtension(t *testing.T) {
	name := ChangeName("logo.png")
	if !strings.HasSuffix(name, ".png") {
		t.Fatalf("расширение не сохранено: %q", name)
	}
}

func TestChangeName_StripsClientPath(t *testing.T) {
	name := ChangeName("../../etc/passwd.jpg")
	if strings.ContainsAny(name, `/\`) {
		t.Fatalf("в имени не должно быть разделителей пути: %q", name)
	}
	if strings.Contains(name, "passwd") {
		t.Fatalf("клиентское имя не должно попадать в итоговое: %q", name)
	}
}

func TestChangeName_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		name := ChangeName("a.png")
		if _, ok := seen[name]; ok {
			t.Fatalf("повторяющееся имя: %q", name)
		}
		seen[name] = struct{}{}
	}
}
