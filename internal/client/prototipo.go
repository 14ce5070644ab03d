package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/iris-civica/iris-client/internal/models"
	"go.uber.org/zap"
)

// ObterVotacoes busca o conjunto de questões do protótipo. Um cache de
// slot único com TTL de 5 minutos evita refetch a cada página; o slot é
// local ao processo.
func (c *Client) ObterVotacoes(ctx context.Context) (*models.PrototipoResponse, error) {
	c.mu.Lock()
	if c.cacheVotacoes != nil && c.now().Before(c.cacheExpira) {
		cached := c.cacheVotacoes
		c.mu.Unlock()
		c.log.Debug("votacoes served from cache")
		return cached, nil
	}
	c.mu.Unlock()

	var prototipo models.PrototipoResponse
	if err := c.Request(ctx, http.MethodGet, "/prototipo/", nil, &prototipo); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cacheVotacoes = &prototipo
	c.cacheExpira = c.now().Add(cacheTTL)
	c.mu.Unlock()

	c.log.Debug("votacoes fetched", zap.Int("total", len(prototipo.Votacoes)))
	return &prototipo, nil
}

// LimparCache invalida o slot de votações; a próxima chamada refaz o fetch.
func (c *Client) LimparCache() {
	c.mu.Lock()
	c.cacheVotacoes = nil
	c.cacheExpira = c.now()
	c.mu.Unlock()
}

// CalcularAfinidade valida o payload antes de qualquer despacho de rede e
// envia o questionário respondido.
func (c *Client) CalcularAfinidade(ctx context.Context, req *models.QuestionarioRequest) (*models.ResultadoQuestionario, error) {
	if err := validarQuestionario(req); err != nil {
		c.log.Warn("invalid questionario payload", zap.Error(err))
		return nil, err
	}

	var resultado models.ResultadoQuestionario
	if err := c.Request(ctx, http.MethodPost, "/prototipo/calcular-afinidade", req, &resultado); err != nil {
		return nil, err
	}
	return &resultado, nil
}

func validarQuestionario(req *models.QuestionarioRequest) error {
	if req == nil {
		return fmt.Errorf("client: %w", models.ErrVotosVazios)
	}
	if strings.TrimSpace(req.NomeUsuario) == "" {
		return fmt.Errorf("client: %w", models.ErrNomeObrigatorio)
	}
	if len(req.Votos) == 0 {
		return fmt.Errorf("client: %w", models.ErrVotosVazios)
	}
	for _, voto := range req.Votos {
		if voto.VotacaoID <= 0 {
			return fmt.Errorf("client: %w: votacao_id %d", models.ErrVotacaoInvalida, voto.VotacaoID)
		}
		if !models.VotoValido(voto.Voto) {
			return fmt.Errorf("client: %w: %q", models.ErrVotoInvalido, voto.Voto)
		}
	}
	return nil
}
