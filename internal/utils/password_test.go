package utils

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("ошибка хеширования: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("хеш не должен совпадать с паролем")
	}
	if !CheckPasswordHash("secret1", hash) {
		t.Fatal("верный пароль не прошёл проверку")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("неверный пароль прошёл проверку")
	}
}
