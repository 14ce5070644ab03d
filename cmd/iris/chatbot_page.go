package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/iris-civica/iris-client/internal/chat"
	"github.com/iris-civica/iris-client/internal/config"
	"github.com/iris-civica/iris-client/internal/models"
	"github.com/iris-civica/iris-client/internal/notify"
	"go.uber.org/zap"
)

// terminalChat apresenta a transcript da conversa no terminal.
type terminalChat struct {
	out io.Writer

	mu      sync.Mutex
	duracao string
}

func (t *terminalChat) MostrarMensagem(m models.ChatMessage) {
	avatar := "🤖"
	if m.Papel == models.PapelUsuario {
		avatar = "👤"
	}
	marcador := ""
	if m.Erro {
		marcador = " [erro]"
	}
	fmt.Fprintf(t.out, "%s [%s]%s %s\n", avatar, m.Timestamp.Format("15:04"), marcador, m.Conteudo)
}

func (t *terminalChat) MostrarDigitando(ativo bool) {
	if ativo {
		fmt.Fprintln(t.out, "… digitando")
	}
}

func (t *terminalChat) AtualizarDuracao(d string) {
	t.mu.Lock()
	t.duracao = d
	t.mu.Unlock()
}

func (t *terminalChat) Duracao() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.duracao
}

func runChatbot(ctx context.Context, api chat.ChatAPI, store chat.Store, notifier notify.Notifier, userID string, cfg *config.Config, log *zap.Logger) {
	renderer := &terminalChat{out: os.Stdout}
	scanner := bufio.NewScanner(os.Stdin)

	c := chat.New(api, store, notifier, renderer, userID, chat.Options{
		SalvarHistorico: cfg.SalvarHistorico,
		ExportDir:       cfg.ExportDir,
		MaxTokens:       cfg.MaxTokens,
		Temperature:     cfg.Temperature,
		Confirmar: func() bool {
			fmt.Print("Tem certeza que deseja limpar toda a conversa? (s/n) ")
			if !scanner.Scan() {
				return false
			}
			return strings.EqualFold(strings.TrimSpace(scanner.Text()), "s")
		},
	}, log)

	// relógio da sessão, apenas informativo
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				renderer.AtualizarDuracao(c.Duracao())
			}
		}
	}()

	fmt.Println("Comandos: /limpar | /exportar | /persistencia on|off | /sair")
	for {
		fmt.Printf("[%s] você> ", renderer.Duracao())
		if !scanner.Scan() || ctx.Err() != nil {
			return
		}
		linha := strings.TrimSpace(scanner.Text())
		switch {
		case linha == "/sair":
			return
		case linha == "/limpar":
			c.Limpar()
		case linha == "/exportar":
			if caminho, err := c.Exportar(); err == nil {
				fmt.Printf("Exportado para %s\n", caminho)
			}
		case linha == "/persistencia on":
			c.AtivarPersistencia(true)
		case linha == "/persistencia off":
			c.AtivarPersistencia(false)
		default:
			if err := c.Enviar(ctx, linha); err != nil {
				log.Error("failed to send message", zap.Error(err))
			}
		}
	}
}
