package booking

import (
	"errors"
	"fmt"
	"time"
)

// ===============================
// Taxonomia de erros do núcleo
// ===============================

// ValidationError: entrada malformada. Rejeitada antes de qualquer
// acesso ao banco, nunca re-tentada.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validação: %s: %s", e.Field, e.Reason)
}

func ErrValidation(field, reason string) error {
	return ValidationError{Field: field, Reason: reason}
}

// ConflictError: o horário foi genuinamente ocupado por outro
// agendamento. Re-tentar não muda o resultado.
type ConflictError struct {
	ProfessionalID uint
	Start          time.Time
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("conflito de horário: profissional %d em %s",
		e.ProfessionalID, e.Start.Format("2006-01-02 15:04"))
}

// ConcurrencyError: falhas transitórias de serialização esgotaram as
// tentativas. Indica contenção de lock, vale alertar.
type ConcurrencyError struct {
	Attempts int
}

func (e ConcurrencyError) Error() string {
	return fmt.Sprintf("conflito de concorrência após %d tentativas", e.Attempts)
}

// NotFoundError: entidade inexistente ou de outro estabelecimento.
type NotFoundError struct {
	Entity string
}

func (e NotFoundError) Error() string {
	return e.Entity + " não encontrado"
}

func ErrNotFound(entity string) error {
	return NotFoundError{Entity: entity}
}

// InvalidTransitionError: mudança de status fora da tabela de transições.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("transição inválida: %s → %s", e.From, e.To)
}

// TransientError é o marcador implementado pelo adaptador de storage
// para falhas re-tentáveis (serialization failure, deadlock). O usecase
// decide re-tentar por este contrato, não por código de erro do driver.
type TransientError interface {
	error
	Transient() bool
}

// ===============================
// Helpers
// ===============================

func IsConflict(err error) bool {
	var ce ConflictError
	return errors.As(err, &ce)
}

func IsConcurrency(err error) bool {
	var ce ConcurrencyError
	return errors.As(err, &ce)
}

func IsNotFound(err error) bool {
	var ne NotFoundError
	return errors.As(err, &ne)
}

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

func IsInvalidTransition(err error) bool {
	var te InvalidTransitionError
	return errors.As(err, &te)
}

func IsTransient(err error) bool {
	var te TransientError
	return errors.As(err, &te) && te.Transient()
}
