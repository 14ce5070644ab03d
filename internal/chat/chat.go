package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iris-civica/iris-client/internal/client"
	"github.com/iris-civica/iris-client/internal/models"
	"github.com/iris-civica/iris-client/internal/notify"
	"go.uber.org/zap"
)

// MensagemBoasVindas abre toda conversa e sobrevive ao Limpar.
const MensagemBoasVindas = "Olá! Eu sou a Iris, sua assistente de informação cívica. Como posso ajudar?"

// ChatAPI é o recorte do Request Client que o chat consome.
type ChatAPI interface {
	EnviarChat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error)
}

// Store espelha o histórico em armazenamento local persistente. As
// gravações são best-effort: falha degrada para um warning no log.
type Store interface {
	Salvar(mensagens []models.ChatMessage) error
	Carregar() ([]models.ChatMessage, error)
	Remover() error
}

// Renderer apresenta a transcript; o controlador só produz os turnos.
type Renderer interface {
	MostrarMensagem(m models.ChatMessage)
	MostrarDigitando(ativo bool)
}

type Options struct {
	SalvarHistorico bool
	ExportDir       string
	MaxTokens       int
	Temperature     float64
	// Confirmar guarda o Limpar atrás de uma confirmação interativa.
	// Nil confirma sempre.
	Confirmar func() bool
}

// Chat mantém uma conversa por tempo de vida da página: um identificador
// de sessão correlaciona os turnos no backend, que resolve o contexto
// conversacional sozinho.
type Chat struct {
	api      ChatAPI
	store    Store
	notifier notify.Notifier
	renderer Renderer
	log      *zap.Logger
	opts     Options

	sessionID string
	userID    string
	historico []models.ChatMessage
	contador  int
	inicio    time.Time
	now       func() time.Time
}

func New(api ChatAPI, store Store, notifier notify.Notifier, renderer Renderer, userID string, opts Options, log *zap.Logger) *Chat {
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 512
	}
	c := &Chat{
		api:      api,
		store:    store,
		notifier: notifier,
		renderer: renderer,
		log:      log,
		opts:     opts,
		userID:   userID,
		contador: 1, // a mensagem de boas-vindas conta
		now:      time.Now,
	}
	c.inicio = c.now()
	c.carregarHistorico()
	if renderer != nil {
		renderer.MostrarMensagem(models.ChatMessage{
			Papel:     models.PapelBot,
			Conteudo:  MensagemBoasVindas,
			Timestamp: c.inicio,
		})
	}
	return c
}

// Enviar acrescenta o turno do usuário de forma otimista, chama o backend
// e acrescenta o turno do bot — a resposta real ou uma desculpa
// classificada pela espécie da falha, marcada como erro.
func (c *Chat) Enviar(ctx context.Context, texto string) error {
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return nil
	}

	c.adicionar(models.ChatMessage{
		Papel:     models.PapelUsuario,
		Conteudo:  texto,
		Timestamp: c.now(),
	})

	if c.sessionID == "" {
		c.sessionID = uuid.New().String()
	}

	if c.renderer != nil {
		c.renderer.MostrarDigitando(true)
	}
	resp, err := c.api.EnviarChat(ctx, &models.ChatRequest{
		Message:     texto,
		SessionID:   c.sessionID,
		UserID:      c.userID,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
	})
	if c.renderer != nil {
		c.renderer.MostrarDigitando(false)
	}

	if err != nil {
		c.log.Error("chat request failed", zap.String("session_id", c.sessionID), zap.Error(err))
		c.adicionar(models.ChatMessage{
			Papel:     models.PapelBot,
			Conteudo:  mensagemDesculpa(client.KindOf(err)),
			Timestamp: c.now(),
			Erro:      true,
		})
		return nil
	}

	if resp.SessionID != "" {
		c.sessionID = resp.SessionID
	}
	c.adicionar(models.ChatMessage{
		Papel:     models.PapelBot,
		Conteudo:  resp.Texto(),
		Timestamp: c.now(),
	})
	return nil
}

// Limpar zera a conversa após confirmação: histórico, contador e sessão
// são descartados (a próxima conversa ganha novo identificador) e a cópia
// persistida some. A mensagem de boas-vindas é re-exibida.
func (c *Chat) Limpar() bool {
	if c.opts.Confirmar != nil && !c.opts.Confirmar() {
		return false
	}
	c.historico = nil
	c.contador = 1
	c.sessionID = ""
	if c.store != nil {
		if err := c.store.Remover(); err != nil {
			c.log.Warn("failed to remove stored transcript", zap.Error(err))
		}
	}
	if c.renderer != nil {
		c.renderer.MostrarMensagem(models.ChatMessage{
			Papel:     models.PapelBot,
			Conteudo:  MensagemBoasVindas,
			Timestamp: c.now(),
		})
	}
	c.notifier.Sucesso("Conversa limpa com sucesso!")
	return true
}

// Exportar serializa o transcript e os metadados da sessão para um
// documento JSON no diretório de exportação. Histórico vazio é um erro
// brando: notificação, nenhum arquivo.
func (c *Chat) Exportar() (string, error) {
	if len(c.historico) == 0 {
		c.notifier.Erro("Não há mensagens para exportar.")
		return "", models.ErrHistoricoVazio
	}

	doc := models.ChatExport{
		ExportadoEm:   c.now(),
		SessionID:     c.sessionID,
		DuracaoSessao: c.Duracao(),
		Mensagens:     c.historico,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("chat: failed to marshal export: %w", err)
	}

	nome := fmt.Sprintf("iris_chat_%s.json", c.now().Format("2006-01-02"))
	caminho := filepath.Join(c.opts.ExportDir, nome)
	if err := os.WriteFile(caminho, data, 0o644); err != nil {
		c.notifier.Erro("Não foi possível exportar a conversa.")
		return "", fmt.Errorf("chat: failed to write export: %w", err)
	}
	c.notifier.Sucesso("Conversa exportada com sucesso!")
	return caminho, nil
}

// AtivarPersistencia liga ou desliga o espelhamento do histórico;
// desligar apaga a cópia persistida imediatamente.
func (c *Chat) AtivarPersistencia(ativa bool) {
	c.opts.SalvarHistorico = ativa
	if !ativa && c.store != nil {
		if err := c.store.Remover(); err != nil {
			c.log.Warn("failed to remove stored transcript", zap.Error(err))
		}
	}
}

// Duracao é o tempo de parede desde a construção, apenas para exibição.
func (c *Chat) Duracao() string {
	decorrido := c.now().Sub(c.inicio)
	minutos := int(decorrido.Minutes())
	segundos := int(decorrido.Seconds()) % 60
	if minutos > 0 {
		return fmt.Sprintf("%dm %ds", minutos, segundos)
	}
	return fmt.Sprintf("%ds", segundos)
}

func (c *Chat) Historico() []models.ChatMessage {
	out := make([]models.ChatMessage, len(c.historico))
	copy(out, c.historico)
	return out
}

func (c *Chat) SessionID() string { return c.sessionID }

func (c *Chat) Contador() int { return c.contador }

func (c *Chat) adicionar(m models.ChatMessage) {
	c.historico = append(c.historico, m)
	c.contador++
	if c.renderer != nil {
		c.renderer.MostrarMensagem(m)
	}
	if c.opts.SalvarHistorico && c.store != nil {
		if err := c.store.Salvar(c.historico); err != nil {
			c.log.Warn("failed to persist transcript", zap.Error(err))
		}
	}
}

func (c *Chat) carregarHistorico() {
	if !c.opts.SalvarHistorico || c.store == nil {
		return
	}
	salvo, err := c.store.Carregar()
	if err != nil {
		c.log.Warn("failed to load stored transcript", zap.Error(err))
		return
	}
	if len(salvo) > 0 {
		c.historico = salvo
		c.contador = len(salvo) + 1
	}
}

func mensagemDesculpa(kind client.ErrorKind) string {
	switch kind {
	case client.KindNetwork:
		return "Desculpe, não consegui me conectar ao servidor. Verifique sua conexão com a internet e tente novamente."
	case client.KindServer:
		return "Ops! Estou com alguns problemas técnicos no momento. Tente novamente em alguns instantes."
	case client.KindRateLimit:
		return "Você está enviando muitas mensagens muito rapidamente. Aguarde um momento antes de tentar novamente."
	case client.KindNotFound:
		return "Desculpe, não encontrei o serviço de conversa no momento. Tente novamente mais tarde."
	case client.KindAuth:
		return "Desculpe, não tenho autorização para responder agora. Tente novamente mais tarde."
	default:
		return "Desculpe, ocorreu um erro inesperado. Tente reformular sua pergunta ou entre em contato com o suporte."
	}
}
