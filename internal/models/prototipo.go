package models

import (
	"errors"
	"time"
)

var (
	ErrNomeObrigatorio        = errors.New("nome do usuário é obrigatório")
	ErrSemVotacoes            = errors.New("nenhuma votação encontrada")
	ErrVotosVazios            = errors.New("votos são obrigatórios")
	ErrVotoInvalido           = errors.New("voto inválido")
	ErrVotacaoInvalida        = errors.New("voto referencia votação inválida")
	ErrQuestionarioIncompleto = errors.New("todas as questões devem ser respondidas")
	ErrEstadoInvalido         = errors.New("operação não permitida no estado atual")
)

// Valores aceitos pelo endpoint calcular-afinidade. VotoVazio marca uma
// questão ainda não respondida e nunca vai para a rede.
const (
	VotoSim       = "SIM"
	VotoNao       = "NAO"
	VotoAbstencao = "ABSTENCAO"
	VotoVazio     = ""
)

func VotoValido(voto string) bool {
	return voto == VotoSim || voto == VotoNao || voto == VotoAbstencao
}

type Votacao struct {
	ID                int      `json:"id"`
	Ordem             int      `json:"ordem"`
	Titulo            string   `json:"titulo"`
	Resumo            string   `json:"resumo"`
	ContextoAtual     string   `json:"contexto_atual"`
	MudancasPropostas string   `json:"mudancas_propostas"`
	ArgumentosFavor   []string `json:"argumentos_favor"`
	ArgumentosContra  []string `json:"argumentos_contra"`
}

type PrototipoResponse struct {
	Votacoes      []Votacao `json:"votacoes"`
	TotalVotacoes int       `json:"total_votacoes"`
}

type VotoEscolha struct {
	VotacaoID int    `json:"votacao_id"`
	Voto      string `json:"voto"`
}

type QuestionarioRequest struct {
	NomeUsuario string        `json:"nome_usuario"`
	Votos       []VotoEscolha `json:"votos"`
}

type DeputadoAfinidade struct {
	ID                  string         `json:"id"`
	Nome                string         `json:"nome"`
	Partido             string         `json:"partido"`
	UF                  string         `json:"uf,omitempty"`
	AfinidadePercentual float64        `json:"afinidade_percentual"`
	VotosCoincidentes   int            `json:"votos_coincidentes"`
	VotosDivergentes    int            `json:"votos_divergentes"`
	VotacoesComparaveis int            `json:"votacoes_comparaveis"`
	Detalhes            map[string]any `json:"detalhes,omitempty"`
}

type ResultadoQuestionario struct {
	NomeUsuario       string              `json:"nome_usuario"`
	DataRealizacao    time.Time           `json:"data_realizacao"`
	RankingAfinidade  []DeputadoAfinidade `json:"ranking_afinidade"`
	ResumoEstatistico map[string]any      `json:"resumo_estatistico"`
}
