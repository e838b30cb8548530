package transaction

import (
	"testing"

	"tesouraria-backend/internal/models"
)

func TestParseValue(t *testing.T) {
	cases := []struct {
		raw     string
		want    string
		wantErr error
	}{
		{raw: "120.50", want: "120.5"},
		{raw: "120,50", want: "120.5"},
		{raw: " 1000 ", want: "1000"},
		{raw: "0.005", want: "0.01"}, // arredonda para 2 casas
		{raw: "0", wantErr: ErrValueNotPositive},
		{raw: "-15.00", wantErr: ErrValueNotPositive},
		{raw: "abc", wantErr: ErrValueInvalid},
		{raw: "", wantErr: ErrValueInvalid},
	}

	for _, tc := range cases {
		got, err := ParseValue(tc.raw)
		if err != tc.wantErr {
			t.Errorf("ParseValue(%q): erro %v, esperado %v", tc.raw, err, tc.wantErr)
			continue
		}
		if tc.wantErr == nil && got.String() != tc.want {
			t.Errorf("ParseValue(%q) = %s, esperado %s", tc.raw, got.String(), tc.want)
		}
	}
}

func TestValidateProofFile(t *testing.T) {
	cases := []struct {
		name    string
		size    int64
		wantErr error
	}{
		{name: "recibo.pdf", size: 1024},
		{name: "foto.JPG", size: MaxProofSize},
		{name: "nota.jpeg", size: 500},
		{name: "print.png", size: 500},
		{name: "grande.pdf", size: MaxProofSize + 1, wantErr: ErrProofTooLarge},
		{name: "planilha.xlsx", size: 1024, wantErr: ErrProofBadExt},
		{name: "script.exe", size: 1024, wantErr: ErrProofBadExt},
		{name: "semextensao", size: 1024, wantErr: ErrProofBadExt},
	}

	for _, tc := range cases {
		if err := ValidateProofFile(tc.name, tc.size); err != tc.wantErr {
			t.Errorf("ValidateProofFile(%q, %d): erro %v, esperado %v", tc.name, tc.size, err, tc.wantErr)
		}
	}
}

func TestValidateProofPresence(t *testing.T) {
	mandatory := &models.Category{Name: "Aluguel", MandatoryProof: true}
	optional := &models.Category{Name: "Dízimo", MandatoryProof: false}

	if err := ValidateProofPresence(mandatory, false); err != ErrProofRequired {
		t.Errorf("categoria com comprovante obrigatório sem arquivo: erro %v, esperado %v", err, ErrProofRequired)
	}
	if err := ValidateProofPresence(mandatory, true); err != nil {
		t.Errorf("categoria com comprovante obrigatório com arquivo: erro inesperado %v", err)
	}
	if err := ValidateProofPresence(optional, false); err != nil {
		t.Errorf("categoria sem exigência de comprovante: erro inesperado %v", err)
	}
}
