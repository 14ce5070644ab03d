package compasso

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatarEstatisticas(t *testing.T) {
	resumo := map[string]any{
		"afinidade_media":     67.333,
		"afinidade_maxima":    90.0,
		"total_deputados":     42.0,
		"coincidencias_media": 3.5,
		"indice_customizado":  0.42,
	}

	estatisticas := FormatarEstatisticas(resumo)
	require.Len(t, estatisticas, 5)

	porLabel := make(map[string]string)
	for _, e := range estatisticas {
		porLabel[e.Label] = e.Valor
	}

	assert.Equal(t, "67.3%", porLabel["Afinidade Média"], "fração com uma casa e unidade do descritor")
	assert.Equal(t, "90%", porLabel["Maior Afinidade"], "valor inteiro sem casas decimais")
	assert.Equal(t, "42", porLabel["Deputados Analisados"], "contagem sem unidade")
	assert.Equal(t, "3.5", porLabel["Coincidências Médias"])
	// chave fora da tabela: rótulo genérico desslugificado e nenhuma
	// unidade adivinhada, mesmo para frações menores que 1
	assert.Equal(t, "0.4", porLabel["INDICE CUSTOMIZADO"])
}

func TestFormatarEstatisticasVazio(t *testing.T) {
	assert.Nil(t, FormatarEstatisticas(nil))
	assert.Nil(t, FormatarEstatisticas(map[string]any{}))
}

func TestFormatarEstatisticasValorNaoNumerico(t *testing.T) {
	estatisticas := FormatarEstatisticas(map[string]any{"afinidade_media": "n/d"})
	require.Len(t, estatisticas, 1)
	assert.Equal(t, "n/d", estatisticas[0].Valor)
}
