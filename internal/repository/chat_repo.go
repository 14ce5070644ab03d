package repository

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/iris-civica/iris-client/internal/models"
	"github.com/tarantool/go-tarantool"
	"go.uber.org/zap"
)

// Espelho local do navegador: o transcript do chat e o identificador
// estável de usuário vivem em spaces do Tarantool.
const (
	espacoHistorico  = "chat_history"
	espacoIdentidade = "identidade"

	chaveHistorico = "historico"
	chaveUserID    = "user_id"
)

type ChatRepository struct {
	db *tarantool.Connection
	l  *zap.Logger
}

func New(db *tarantool.Connection, l *zap.Logger) *ChatRepository {
	return &ChatRepository{
		db: db,
		l:  l,
	}
}

// Salvar substitui o transcript persistido pela versão corrente.
func (r *ChatRepository) Salvar(mensagens []models.ChatMessage) error {
	historicoJSON, err := json.Marshal(mensagens)
	if err != nil {
		return fmt.Errorf("repository: json marshal error: %w", err)
	}

	resp, err := r.db.Replace(espacoHistorico, []interface{}{chaveHistorico, string(historicoJSON)})
	if err != nil {
		r.l.Debug("error replacing transcript", zap.Error(err))
		return fmt.Errorf("repository: database replace error: %w", err)
	}
	r.l.Debug("tarantool response",
		zap.Uint32("status_code", resp.Code),
		zap.Int("mensagens", len(mensagens)))
	return nil
}

// Carregar devolve o transcript persistido; ausência não é erro.
func (r *ChatRepository) Carregar() ([]models.ChatMessage, error) {
	resp, err := r.db.Select(espacoHistorico, "primary", 0, 1, tarantool.IterEq, []interface{}{chaveHistorico})
	if err != nil {
		r.l.Debug("failed to select transcript", zap.Error(err))
		return nil, fmt.Errorf("repository: database select error: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}

	tupla, ok := resp.Data[0].([]interface{})
	if !ok || len(tupla) < 2 {
		r.l.Debug("unexpected data type", zap.Any("data", resp.Data))
		return nil, fmt.Errorf("repository: unexpected transcript tuple")
	}
	historicoJSON, ok := tupla[1].(string)
	if !ok {
		return nil, fmt.Errorf("repository: unexpected type for transcript field")
	}

	var mensagens []models.ChatMessage
	if err = json.Unmarshal([]byte(historicoJSON), &mensagens); err != nil {
		r.l.Debug("failed to unmarshal transcript", zap.Error(err))
		return nil, fmt.Errorf("repository: failed to unmarshal transcript: %w", err)
	}
	return mensagens, nil
}

func (r *ChatRepository) Remover() error {
	resp, err := r.db.Delete(espacoHistorico, "primary", []interface{}{chaveHistorico})
	if err != nil {
		r.l.Debug("failed to delete transcript", zap.Error(err))
		return fmt.Errorf("repository: database delete error: %w", err)
	}
	r.l.Debug("tarantool response",
		zap.Uint32("status_code", resp.Code),
		zap.Any("resp", resp.Data))
	return nil
}

// ObterOuCriarUserID devolve o identificador estável desta instalação,
// gerando e persistindo um novo na primeira chamada.
func (r *ChatRepository) ObterOuCriarUserID() (string, error) {
	resp, err := r.db.Select(espacoIdentidade, "primary", 0, 1, tarantool.IterEq, []interface{}{chaveUserID})
	if err != nil {
		r.l.Debug("failed to select user id", zap.Error(err))
		return "", fmt.Errorf("repository: database select error: %w", err)
	}
	if len(resp.Data) > 0 {
		tupla, ok := resp.Data[0].([]interface{})
		if !ok || len(tupla) < 2 {
			return "", fmt.Errorf("repository: unexpected identity tuple")
		}
		userID, ok := tupla[1].(string)
		if !ok {
			return "", fmt.Errorf("repository: unexpected type for user id field")
		}
		return userID, nil
	}

	userID := "user_" + uuid.New().String()
	if _, err = r.db.Insert(espacoIdentidade, []interface{}{chaveUserID, userID}); err != nil {
		r.l.Debug("failed to insert user id", zap.Error(err))
		return "", fmt.Errorf("repository: database insert error: %w", err)
	}
	r.l.Info("new user id created", zap.String("user_id", userID))
	return userID, nil
}
