package usecase

import "errors"

// DomainError é uma rejeição de regra de negócio: o comando estava bem
// formado mas não pode ser atendido. TechnicalError é falha de
// infraestrutura (banco, broker, API externa).
type DomainError struct {
	Code    string
	Message string
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

type TechnicalError struct {
	Code    string
	Message string
}

func NewTechnicalError(code, message string) *TechnicalError {
	return &TechnicalError{Code: code, Message: message}
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}
