package transaction

import (
	"errors"
	"path/filepath"
	"strings"

	"tesouraria-backend/internal/models"

	"github.com/shopspring/decimal"
)

// MaxProofSize: limite de 1MB por comprovante anexado
const MaxProofSize = 1 << 20

var allowedProofExts = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var (
	ErrValueInvalid     = errors.New("Informe um valor numérico válido")
	ErrValueNotPositive = errors.New("O valor deve ser maior que zero")
	ErrProofRequired    = errors.New("Esta categoria exige comprovante anexado")
	ErrProofTooLarge    = errors.New("O comprovante não pode ultrapassar 1MB")
	ErrProofBadExt      = errors.New("Formato de comprovante inválido (use pdf, jpg, jpeg ou png)")
)

// ParseValue aceita "120.50" e também "120,50", que é como o valor chega
// dos formulários em português
func ParseValue(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrValueInvalid
	}
	if !v.IsPositive() {
		return decimal.Zero, ErrValueNotPositive
	}
	return v.Round(2), nil
}

// ValidateProofFile checa tamanho e extensão do arquivo enviado
func ValidateProofFile(filename string, size int64) error {
	if size > MaxProofSize {
		return ErrProofTooLarge
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedProofExts[ext] {
		return ErrProofBadExt
	}
	return nil
}

// ValidateProofPresence aplica a regra da categoria: quando a categoria
// exige comprovante, a transação não pode ficar sem um
func ValidateProofPresence(category *models.Category, hasProof bool) error {
	if category.MandatoryProof && !hasProof {
		return ErrProofRequired
	}
	return nil
}
