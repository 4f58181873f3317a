package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	TTL        = 24 * time.Hour
	CookieName = "session_id"

	keyPrefix = "session:"
)

type Flash struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// State — типизированное состояние сессии клиента: маркер текущего
// пользователя, ожидающая проверка капчи и очередь flash-сообщений.
type State struct {
	User    string  `json:"user,omitempty"`
	Captcha string  `json:"captcha,omitempty"`
	Flashes []Flash `json:"flashes,omitempty"`
}

func (s *State) AddFlash(message, category string) {
	s.Flashes = append(s.Flashes, Flash{Message: message, Category: category})
}

// PopFlashes возвращает накопленные сообщения и очищает очередь —
// каждое сообщение показывается ровно один раз.
func (s *State) PopFlashes() []Flash {
	f := s.Flashes
	s.Flashes = nil
	return f
}

type Store interface {
	// Load возвращает пустое состояние, если сессии нет или она истекла.
	Load(ctx context.Context, sid string) (*State, error)
	Save(ctx context.Context, sid string, st *State) error
	Delete(ctx context.Context, sid string) error
}

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Load(ctx context.Context, sid string) (*State, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+sid).Result()
	if err == redis.Nil {
		return &State{}, nil
	}
	if err != nil {
		return nil, err
	}
	var st State
	if err := json.Unmarshal([]byte(val), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *RedisStore) Save(ctx context.Context, sid string, st *State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+sid, raw, TTL).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, keyPrefix+sid).Err()
}
