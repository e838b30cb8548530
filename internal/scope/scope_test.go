package scope

import (
	"testing"

	"tesouraria-backend/internal/models"
)

func TestForUserAdminIsUnrestricted(t *testing.T) {
	admin := &models.User{Role: models.RoleAdmin}

	s := ForUser(admin)

	if !s.IsUnrestricted() {
		t.Fatal("admin deveria ter escopo irrestrito")
	}
	if s.Empty() {
		t.Fatal("escopo irrestrito não pode ser vazio")
	}
	if !s.HasField(999) {
		t.Fatal("admin deveria enxergar qualquer campo")
	}
}

func TestForUserTreasurerFieldUnion(t *testing.T) {
	treasurer := &models.User{
		Role:   models.RoleTreasurer,
		Fields: []models.Field{{ID: 1}, {ID: 3}},
	}

	s := ForUser(treasurer)

	if s.IsUnrestricted() {
		t.Fatal("tesoureiro não pode ter escopo irrestrito")
	}
	if s.Empty() {
		t.Fatal("tesoureiro com campos não pode ter escopo vazio")
	}
	if !s.HasField(1) || !s.HasField(3) {
		t.Fatal("campos atribuídos deveriam estar no escopo")
	}
	if s.HasField(2) {
		t.Fatal("campo não atribuído não pode estar no escopo")
	}
	if s.FieldCount() != 2 {
		t.Fatalf("FieldCount = %d, esperado 2", s.FieldCount())
	}
}

func TestForUserTreasurerWithoutFields(t *testing.T) {
	treasurer := &models.User{Role: models.RoleTreasurer}

	s := ForUser(treasurer)

	if !s.Empty() {
		t.Fatal("tesoureiro sem campos deveria ter escopo vazio")
	}
	if s.HasField(1) {
		t.Fatal("escopo vazio não pode conter campos")
	}
}
