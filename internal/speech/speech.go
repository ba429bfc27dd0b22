package speech

import (
	"context"
	"errors"
)

// ErrUnavailable indica que la plataforma no soporta búsqueda por voz
var ErrUnavailable = errors.New("voice search is not supported on this platform")

// Recognizer es la capacidad opcional de reconocimiento de voz: produce
// una única frase reconocida para alimentar la búsqueda
type Recognizer interface {
	Recognize(ctx context.Context) (string, error)
}

// Unavailable es el recognizer por defecto cuando la capacidad no existe
type Unavailable struct{}

func (Unavailable) Recognize(context.Context) (string, error) {
	return "", ErrUnavailable
}

// Static devuelve siempre la misma frase; sirve como doble de prueba
type Static struct {
	Phrase string
}

func (s Static) Recognize(context.Context) (string, error) {
	return s.Phrase, nil
}
