package compasso

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// descritor de uma métrica do resumo estatístico. A tabela substitui a
// heurística antiga de adivinhar "%" pelo tamanho do valor.
type descritorMetrica struct {
	Label    string
	Unidade  string
	Precisao int
}

var descritores = map[string]descritorMetrica{
	"afinidade_media":     {Label: "Afinidade Média", Unidade: "%", Precisao: 1},
	"afinidade_maxima":    {Label: "Maior Afinidade", Unidade: "%", Precisao: 1},
	"afinidade_minima":    {Label: "Menor Afinidade", Unidade: "%", Precisao: 1},
	"total_deputados":     {Label: "Deputados Analisados"},
	"votacoes_analisadas": {Label: "Votações Analisadas"},
	"coincidencias_media": {Label: "Coincidências Médias", Precisao: 1},
	"divergencias_media":  {Label: "Divergências Médias", Precisao: 1},
}

// Estatistica é um par rotulado pronto para exibição.
type Estatistica struct {
	Label string
	Valor string
}

// FormatarEstatisticas percorre o resumo estatístico arbitrário do
// backend e produz pares exibíveis em ordem determinística. Chaves fora
// da tabela recebem um rótulo genérico desslugificado e nenhuma unidade.
func FormatarEstatisticas(resumo map[string]any) []Estatistica {
	if len(resumo) == 0 {
		return nil
	}

	chaves := make([]string, 0, len(resumo))
	for chave := range resumo {
		chaves = append(chaves, chave)
	}
	sort.Strings(chaves)

	estatisticas := make([]Estatistica, 0, len(chaves))
	for _, chave := range chaves {
		desc, conhecida := descritores[chave]
		if !conhecida {
			desc = descritorMetrica{Label: labelGenerico(chave), Precisao: 1}
		}
		estatisticas = append(estatisticas, Estatistica{
			Label: desc.Label,
			Valor: formatarValor(resumo[chave], desc),
		})
	}
	return estatisticas
}

func formatarValor(valor any, desc descritorMetrica) string {
	var n float64
	switch v := valor.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	default:
		return fmt.Sprintf("%v", valor)
	}

	// inteiros exibem sem casas decimais independente do descritor
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10) + desc.Unidade
	}
	return strconv.FormatFloat(n, 'f', desc.Precisao, 64) + desc.Unidade
}

func labelGenerico(chave string) string {
	return strings.ToUpper(strings.ReplaceAll(chave, "_", " "))
}
