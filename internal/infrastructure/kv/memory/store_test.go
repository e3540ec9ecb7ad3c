package memory

import (
	"context"
	"sort"
	"testing"
)

func TestStore_GetSetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore()

	if _, ok, err := store.Get(ctx, "user:201"); err != nil || ok {
		t.Fatalf("expected absent key, ok=%v err=%v", ok, err)
	}

	value := []byte(`{"fid":201}`)
	if err := store.Set(ctx, "user:201", value); err != nil {
		t.Fatalf("set: %v", err)
	}
	value[0] = 'x'

	got, ok, err := store.Get(ctx, "user:201")
	if err != nil || !ok {
		t.Fatalf("expected stored key, ok=%v err=%v", ok, err)
	}
	if string(got) != `{"fid":201}` {
		t.Fatalf("stored value was aliased: %s", got)
	}

	if err := store.Delete(ctx, "user:201"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "user:201"); err != nil {
		t.Fatalf("second delete must not fail: %v", err)
	}
}

func TestStore_KeysAndMGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStoreWith(map[string][]byte{
		"user:201": []byte(`{"fid":201}`),
		"user:202": []byte(`{"fid":202}`),
		"201":      []byte(`{"url":"u","token":"t"}`),
	})

	keys, err := store.Keys(ctx, "user:")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "user:201" || keys[1] != "user:202" {
		t.Fatalf("unexpected keys: %v", keys)
	}

	values, err := store.MGet(ctx, []string{"user:202", "user:missing"})
	if err != nil {
		t.Fatalf("mget: %v", err)
	}
	if len(values) != 2 || string(values[0]) != `{"fid":202}` || values[1] != nil {
		t.Fatalf("unexpected mget result: %q", values)
	}
}

func TestStore_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := NewStore().Get(ctx, "user:1"); err == nil {
		t.Fatalf("expected context error")
	}
}
