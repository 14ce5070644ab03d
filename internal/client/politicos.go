package client

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/iris-civica/iris-client/internal/models"
	"go.uber.org/zap"
)

func (c *Client) ListarPoliticos(ctx context.Context) ([]models.Politico, error) {
	var politicos []models.Politico
	if err := c.Request(ctx, http.MethodGet, "/politicos/", nil, &politicos); err != nil {
		return nil, err
	}
	return politicos, nil
}

func (c *Client) BuscarPolitico(ctx context.Context, id string) (*models.Politico, error) {
	var politico models.Politico
	if err := c.Request(ctx, http.MethodGet, "/politicos/"+url.PathEscape(id), nil, &politico); err != nil {
		return nil, err
	}
	return &politico, nil
}

func (c *Client) CriarPolitico(ctx context.Context, dados *models.Politico) (*models.Politico, error) {
	var criado models.Politico
	if err := c.Request(ctx, http.MethodPost, "/politicos/", dados, &criado); err != nil {
		return nil, err
	}
	return &criado, nil
}

func (c *Client) AtualizarPolitico(ctx context.Context, id string, dados *models.Politico) (*models.Politico, error) {
	var atualizado models.Politico
	if err := c.Request(ctx, http.MethodPut, "/politicos/"+url.PathEscape(id), dados, &atualizado); err != nil {
		return nil, err
	}
	return &atualizado, nil
}

// UpsertPolitico cria ou atualiza via PATCH.
func (c *Client) UpsertPolitico(ctx context.Context, id string, dados *models.Politico) (*models.Politico, error) {
	var salvo models.Politico
	if err := c.Request(ctx, http.MethodPatch, "/politicos/"+url.PathEscape(id), dados, &salvo); err != nil {
		return nil, err
	}
	return &salvo, nil
}

func (c *Client) DeletarPolitico(ctx context.Context, id string) error {
	return c.Request(ctx, http.MethodDelete, "/politicos/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListarPorPartido(ctx context.Context, partido string) ([]models.Politico, error) {
	var politicos []models.Politico
	if err := c.Request(ctx, http.MethodGet, "/politicos/partido/"+url.PathEscape(partido), nil, &politicos); err != nil {
		return nil, err
	}
	return politicos, nil
}

// FiltrarPoliticos busca a lista completa e aplica os filtros localmente:
// substring no nome, igualdade em partido e estado.
func (c *Client) FiltrarPoliticos(ctx context.Context, filtros models.PoliticoFiltros) ([]models.Politico, error) {
	politicos, err := c.ListarPoliticos(ctx)
	if err != nil {
		return nil, err
	}

	filtrados := make([]models.Politico, 0, len(politicos))
	nome := strings.ToLower(filtros.Nome)
	for _, p := range politicos {
		if nome != "" && !strings.Contains(strings.ToLower(p.Nome), nome) {
			continue
		}
		if filtros.Partido != "" && p.Partido != filtros.Partido {
			continue
		}
		if filtros.Estado != "" && p.Estado != filtros.Estado {
			continue
		}
		filtrados = append(filtrados, p)
	}
	return filtrados, nil
}

func (c *Client) Partidos(ctx context.Context) ([]string, error) {
	politicos, err := c.ListarPoliticos(ctx)
	if err != nil {
		return nil, err
	}
	return distintosOrdenados(politicos, func(p models.Politico) string { return p.Partido }), nil
}

func (c *Client) Estados(ctx context.Context) ([]string, error) {
	politicos, err := c.ListarPoliticos(ctx)
	if err != nil {
		return nil, err
	}
	return distintosOrdenados(politicos, func(p models.Politico) string { return p.Estado }), nil
}

// Estatisticas agrega contagens gerais; em falha degrada para zeros em vez
// de propagar o erro.
func (c *Client) Estatisticas(ctx context.Context) models.Estatisticas {
	politicos, err := c.ListarPoliticos(ctx)
	if err != nil {
		c.log.Warn("failed to load statistics", zap.Error(err))
		return models.Estatisticas{}
	}
	prototipo, err := c.ObterVotacoes(ctx)
	if err != nil {
		c.log.Warn("failed to load statistics", zap.Error(err))
		return models.Estatisticas{}
	}

	return models.Estatisticas{
		TotalPoliticos: len(politicos),
		TotalPartidos:  len(distintosOrdenados(politicos, func(p models.Politico) string { return p.Partido })),
		TotalEstados:   len(distintosOrdenados(politicos, func(p models.Politico) string { return p.Estado })),
		TotalVotacoes:  len(prototipo.Votacoes),
	}
}

func distintosOrdenados(politicos []models.Politico, campo func(models.Politico) string) []string {
	vistos := make(map[string]struct{})
	var valores []string
	for _, p := range politicos {
		v := campo(p)
		if v == "" {
			continue
		}
		if _, ok := vistos[v]; ok {
			continue
		}
		vistos[v] = struct{}{}
		valores = append(valores, v)
	}
	sort.Strings(valores)
	return valores
}
