package compasso

import (
	"context"
	"fmt"
	"strings"

	"github.com/iris-civica/iris-client/internal/models"
	"github.com/iris-civica/iris-client/internal/notify"
	"go.uber.org/zap"
)

// Fase do questionário. O caminho de erro do envio volta para
// FaseQuestionario na questão em que o usuário estava.
type Fase int

const (
	FaseNome Fase = iota
	FaseQuestionario
	FaseEnviando
	FaseResultados
)

func (f Fase) String() string {
	switch f {
	case FaseNome:
		return "nome"
	case FaseQuestionario:
		return "questionario"
	case FaseEnviando:
		return "enviando"
	case FaseResultados:
		return "resultados"
	default:
		return "desconhecida"
	}
}

// QuizAPI é o recorte do Request Client que o controlador consome.
type QuizAPI interface {
	ObterVotacoes(ctx context.Context) (*models.PrototipoResponse, error)
	CalcularAfinidade(ctx context.Context, req *models.QuestionarioRequest) (*models.ResultadoQuestionario, error)
}

// Renderer separa a lógica de transição da apresentação: o controlador
// produz view-models, o adaptador decide como exibi-los.
type Renderer interface {
	MostrarQuestao(s Snapshot)
	MostrarEnvio()
	MostrarResultados(r *models.ResultadoQuestionario, estatisticas []Estatistica)
}

// Snapshot é o view-model de uma questão em andamento.
type Snapshot struct {
	Fase           Fase
	NomeUsuario    string
	Questao        *models.Votacao
	Indice         int
	Total          int
	Resposta       string
	ProgressoTexto string
	PodeVoltar     bool
	PodeAvancar    bool
	UltimaQuestao  bool
	PodeFinalizar  bool
}

// Compasso dirige o questionário de afinidade política: busca as
// votações, coleta uma resposta por questão e envia para o cálculo.
type Compasso struct {
	api      QuizAPI
	notifier notify.Notifier
	renderer Renderer
	log      *zap.Logger

	fase      Fase
	nome      string
	votacoes  []models.Votacao
	respostas []string
	atual     int
	resultado *models.ResultadoQuestionario

	// geracao invalida respostas de rede que chegam depois de um
	// Reiniciar ou de um novo inicio.
	geracao uint64
}

func New(api QuizAPI, notifier notify.Notifier, renderer Renderer, log *zap.Logger) *Compasso {
	return &Compasso{
		api:      api,
		notifier: notifier,
		renderer: renderer,
		log:      log,
		fase:     FaseNome,
	}
}

// Iniciar valida o nome, busca as votações e abre o questionário na
// primeira questão. Em falha (ou zero votações) permanece em FaseNome.
func (c *Compasso) Iniciar(ctx context.Context, nome string) error {
	if c.fase != FaseNome {
		return fmt.Errorf("compasso: %w: fase %s", models.ErrEstadoInvalido, c.fase)
	}
	nome = strings.TrimSpace(nome)
	if nome == "" {
		c.notifier.Erro("Por favor, digite seu nome antes de continuar.")
		return models.ErrNomeObrigatorio
	}

	geracao := c.geracao
	prototipo, err := c.api.ObterVotacoes(ctx)
	if geracao != c.geracao {
		c.log.Debug("discarding stale votacoes response")
		return nil
	}
	if err != nil {
		c.log.Error("failed to load votacoes", zap.Error(err))
		c.notifier.Erro("Erro ao carregar as questões. Tente novamente.")
		return fmt.Errorf("compasso: failed to load votacoes: %w", err)
	}
	if len(prototipo.Votacoes) == 0 {
		c.notifier.Erro("Erro ao carregar as questões. Tente novamente.")
		return models.ErrSemVotacoes
	}

	c.nome = nome
	c.votacoes = prototipo.Votacoes
	c.respostas = make([]string, len(c.votacoes))
	c.atual = 0
	c.fase = FaseQuestionario

	c.log.Info("questionario iniciado",
		zap.String("nome_usuario", nome),
		zap.Int("total_votacoes", len(c.votacoes)))
	c.renderizar()
	return nil
}

// Responder grava a resposta da questão indicada, sobrescrevendo
// incondicionalmente uma resposta anterior.
func (c *Compasso) Responder(indice int, voto string) error {
	if c.fase != FaseQuestionario {
		return fmt.Errorf("compasso: %w: fase %s", models.ErrEstadoInvalido, c.fase)
	}
	if indice < 0 || indice >= len(c.respostas) {
		return fmt.Errorf("compasso: %w: questão %d", models.ErrVotacaoInvalida, indice)
	}
	if !models.VotoValido(voto) {
		return fmt.Errorf("compasso: %w: %q", models.ErrVotoInvalido, voto)
	}
	c.respostas[indice] = voto
	c.renderizar()
	return nil
}

// Avancar move para a próxima questão; no fim da lista é um no-op.
func (c *Compasso) Avancar() {
	if c.fase == FaseQuestionario && c.atual < len(c.votacoes)-1 {
		c.atual++
		c.renderizar()
	}
}

// Voltar move para a questão anterior; no início é um no-op.
func (c *Compasso) Voltar() {
	if c.fase == FaseQuestionario && c.atual > 0 {
		c.atual--
		c.renderizar()
	}
}

func (c *Compasso) PodeVoltar() bool {
	return c.fase == FaseQuestionario && c.atual > 0
}

func (c *Compasso) PodeAvancar() bool {
	return c.fase == FaseQuestionario &&
		c.atual < len(c.votacoes)-1 &&
		c.respostas[c.atual] != models.VotoVazio
}

func (c *Compasso) UltimaQuestao() bool {
	return c.fase == FaseQuestionario && c.atual == len(c.votacoes)-1
}

// PodeFinalizar exige todas as questões respondidas, não apenas a atual.
func (c *Compasso) PodeFinalizar() bool {
	if c.fase != FaseQuestionario || len(c.respostas) == 0 {
		return false
	}
	for _, r := range c.respostas {
		if r == models.VotoVazio {
			return false
		}
	}
	return true
}

// Finalizar reconfere as respostas, monta o payload e chama o cálculo de
// afinidade. Em falha volta para a questão em que o usuário estava, com
// as respostas preservadas.
func (c *Compasso) Finalizar(ctx context.Context) error {
	if c.fase != FaseQuestionario {
		return fmt.Errorf("compasso: %w: fase %s", models.ErrEstadoInvalido, c.fase)
	}
	if !c.PodeFinalizar() {
		c.notifier.Erro("Por favor, responda todas as questões antes de finalizar.")
		return models.ErrQuestionarioIncompleto
	}

	req := &models.QuestionarioRequest{
		NomeUsuario: c.nome,
		Votos:       make([]models.VotoEscolha, len(c.votacoes)),
	}
	for i, votacao := range c.votacoes {
		req.Votos[i] = models.VotoEscolha{VotacaoID: votacao.ID, Voto: c.respostas[i]}
	}

	c.fase = FaseEnviando
	if c.renderer != nil {
		c.renderer.MostrarEnvio()
	}

	geracao := c.geracao
	resultado, err := c.api.CalcularAfinidade(ctx, req)
	if geracao != c.geracao {
		c.log.Debug("discarding stale afinidade response")
		return nil
	}
	if err != nil {
		c.log.Error("failed to calculate afinidade", zap.Error(err))
		c.fase = FaseQuestionario
		c.notifier.Erro("Erro ao calcular afinidade. Tente novamente.")
		c.renderizar()
		return fmt.Errorf("compasso: failed to calculate afinidade: %w", err)
	}

	c.resultado = resultado
	c.fase = FaseResultados
	c.log.Info("afinidade calculada",
		zap.String("nome_usuario", resultado.NomeUsuario),
		zap.Int("ranking", len(resultado.RankingAfinidade)))
	if c.renderer != nil {
		c.renderer.MostrarResultados(resultado, FormatarEstatisticas(resultado.ResumoEstatistico))
	}
	c.notifier.Sucesso("Afinidade calculada com sucesso!")
	return nil
}

// Reiniciar descarta todo o estado da sessão e volta para a entrada de
// nome, de qualquer fase.
func (c *Compasso) Reiniciar() {
	c.geracao++
	c.fase = FaseNome
	c.nome = ""
	c.votacoes = nil
	c.respostas = nil
	c.atual = 0
	c.resultado = nil
}

func (c *Compasso) Fase() Fase { return c.fase }

func (c *Compasso) Atual() int { return c.atual }

func (c *Compasso) Resultado() *models.ResultadoQuestionario { return c.resultado }

// Snapshot devolve o view-model da questão corrente.
func (c *Compasso) Snapshot() Snapshot {
	s := Snapshot{
		Fase:        c.fase,
		NomeUsuario: c.nome,
		Indice:      c.atual,
		Total:       len(c.votacoes),
	}
	if c.fase == FaseQuestionario && c.atual < len(c.votacoes) {
		s.Questao = &c.votacoes[c.atual]
		s.Resposta = c.respostas[c.atual]
		s.ProgressoTexto = fmt.Sprintf("Questão %d de %d", c.atual+1, len(c.votacoes))
		s.PodeVoltar = c.PodeVoltar()
		s.PodeAvancar = c.PodeAvancar()
		s.UltimaQuestao = c.UltimaQuestao()
		s.PodeFinalizar = c.PodeFinalizar()
	}
	return s
}

func (c *Compasso) renderizar() {
	if c.renderer != nil {
		c.renderer.MostrarQuestao(c.Snapshot())
	}
}
