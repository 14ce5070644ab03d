package models

import (
	"errors"
	"time"
)

var ErrHistoricoVazio = errors.New("não há mensagens para exportar")

const (
	PapelUsuario = "user"
	PapelBot     = "bot"
)

type ChatRequest struct {
	Message     string  `json:"message"`
	SessionID   string  `json:"session_id,omitempty"`
	UserID      string  `json:"user_id,omitempty"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// O backend responde ora com "response", ora com "message".
type ChatResponse struct {
	Response  string `json:"response"`
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

func (r *ChatResponse) Texto() string {
	if r.Response != "" {
		return r.Response
	}
	if r.Message != "" {
		return r.Message
	}
	return "Desculpe, não consegui processar sua mensagem."
}

type ChatMessage struct {
	Papel     string    `json:"papel"`
	Conteudo  string    `json:"conteudo"`
	Timestamp time.Time `json:"timestamp"`
	Erro      bool      `json:"erro,omitempty"`
}

type ChatExport struct {
	ExportadoEm   time.Time     `json:"exportado_em"`
	SessionID     string        `json:"session_id"`
	DuracaoSessao string        `json:"duracao_sessao"`
	Mensagens     []ChatMessage `json:"mensagens"`
}
