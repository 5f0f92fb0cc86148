package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeNotFound     Code = "NOT_FOUND"
	CodeAPI          Code = "API_ERROR"
	CodeInternal     Code = "INTERNAL_ERROR"
)

// Metadata carries the localized fallback shown to the user when the
// backend supplies no message of its own.
type Metadata struct {
	UserMessage string
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		UserMessage: "Dados inválidos",
	},
	CodeUnauthorized: {
		UserMessage: "Sessão inválida. Faça login novamente.",
	},
	CodeNotFound: {
		UserMessage: "Recurso não encontrado",
	},
	CodeAPI: {
		UserMessage: "Erro ao comunicar com o servidor",
	},
	CodeInternal: {
		UserMessage: "Erro inesperado",
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code          Code
	message       string
	serverMessage string
	cause         error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// ServerMessage returns the backend-supplied error message, if any.
func (e *Error) ServerMessage() string {
	if e == nil {
		return ""
	}
	return e.serverMessage
}

// WithServerMessage records the message the backend returned in its
// error body so it can be surfaced verbatim to the user.
func (e *Error) WithServerMessage(message string) *Error {
	if e == nil {
		return nil
	}
	e.serverMessage = message
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf reports the code of an error, or CodeInternal when the error
// was never classified.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}

// UserMessage resolves the text shown to the user for any error: the
// backend's own message when one was returned, otherwise the localized
// fallback for the error code.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	typed := As(err)
	if typed == nil {
		return MetadataFor(CodeInternal).UserMessage
	}
	if msg := typed.ServerMessage(); msg != "" {
		return msg
	}
	return MetadataFor(typed.Code()).UserMessage
}
