package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifica falhas de requisição para que os controladores
// escolham comportamento (retry, mensagem ao usuário) sem inspecionar
// strings de erro.
type ErrorKind int

const (
	KindGeneric ErrorKind = iota
	KindNetwork
	KindAuth
	KindNotFound
	KindRateLimit
	KindServer
)

// HTTPError é retornado para respostas não-2xx.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: status %d", e.Status)
}

func (e *HTTPError) Kind() ErrorKind {
	switch {
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return KindAuth
	case e.Status == http.StatusNotFound:
		return KindNotFound
	case e.Status == http.StatusTooManyRequests:
		return KindRateLimit
	case e.Status >= 500:
		return KindServer
	default:
		return KindGeneric
	}
}

// TransportError marca falhas em que a requisição não chegou a produzir
// uma resposta HTTP (conexão recusada, interrompida). Só esta classe é
// elegível para retry.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("client: request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// KindOf resolve a classe de um erro produzido pelo Client. Erros fora
// das duas classes tipadas (marshal, unmarshal, construção de request)
// são genéricos, nunca de transporte.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindGeneric
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Kind()
	}
	var transpErr *TransportError
	if errors.As(err, &transpErr) {
		return KindNetwork
	}
	return KindGeneric
}

// Retriable diz se o erro pertence à classe de transporte, a única que a
// rota de retry repete. Erros de aplicação (4xx/5xx) e de codificação
// propagam imediatamente.
func Retriable(err error) bool {
	return err != nil && KindOf(err) == KindNetwork
}
