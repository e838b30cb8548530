package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := NewTTLCache[string](time.Minute)

	if _, ok := c.Get("chave"); ok {
		t.Fatal("cache vazio não deveria responder")
	}

	c.Set("chave", "valor")

	got, ok := c.Get("chave")
	if !ok || got != "valor" {
		t.Fatalf("Get = %q, %v; esperado \"valor\", true", got, ok)
	}
}

func TestExpiry(t *testing.T) {
	c := NewTTLCache[int](10 * time.Millisecond)

	c.Set("chave", 42)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("chave"); ok {
		t.Fatal("entrada expirada não deveria ser retornada")
	}
}

func TestClear(t *testing.T) {
	c := NewTTLCache[int](time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	if _, ok := c.Get("a"); ok {
		t.Fatal("Clear deveria remover todas as entradas")
	}
}
