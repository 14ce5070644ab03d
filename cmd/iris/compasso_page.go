package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iris-civica/iris-client/internal/compasso"
	"github.com/iris-civica/iris-client/internal/models"
	"github.com/iris-civica/iris-client/internal/notify"
	"go.uber.org/zap"
)

// terminalQuiz é o adaptador de apresentação do questionário.
type terminalQuiz struct {
	out io.Writer
}

func (t *terminalQuiz) MostrarQuestao(s compasso.Snapshot) {
	if s.Questao == nil {
		return
	}
	q := s.Questao
	fmt.Fprintf(t.out, "\n── %s ──\n", s.ProgressoTexto)
	fmt.Fprintf(t.out, "Contexto: %s\n\n", q.ContextoAtual)
	fmt.Fprintf(t.out, "%s\n%s\n\n", q.Titulo, q.Resumo)
	fmt.Fprintf(t.out, "Mudanças propostas: %s\n", q.MudancasPropostas)
	if len(q.ArgumentosFavor) > 0 {
		fmt.Fprintln(t.out, "\nArgumentos a favor:")
		for _, arg := range q.ArgumentosFavor {
			fmt.Fprintf(t.out, "  • %s\n", arg)
		}
	}
	if len(q.ArgumentosContra) > 0 {
		fmt.Fprintln(t.out, "\nArgumentos contra:")
		for _, arg := range q.ArgumentosContra {
			fmt.Fprintf(t.out, "  • %s\n", arg)
		}
	}
	if s.Resposta != models.VotoVazio {
		fmt.Fprintf(t.out, "\nSua resposta atual: %s\n", s.Resposta)
	}
	fmt.Fprintln(t.out, "\nResponda com: sim | nao | abstencao")
	var comandos []string
	if s.PodeVoltar {
		comandos = append(comandos, "anterior")
	}
	if s.UltimaQuestao {
		if s.PodeFinalizar {
			comandos = append(comandos, "finalizar")
		}
	} else if s.PodeAvancar {
		comandos = append(comandos, "proxima")
	}
	comandos = append(comandos, "reiniciar", "sair")
	fmt.Fprintf(t.out, "Comandos: %s\n", strings.Join(comandos, " | "))
}

func (t *terminalQuiz) MostrarEnvio() {
	fmt.Fprintln(t.out, "\nCalculando sua afinidade política...")
}

func (t *terminalQuiz) MostrarResultados(r *models.ResultadoQuestionario, estatisticas []compasso.Estatistica) {
	fmt.Fprintf(t.out, "\n🎯 Seus resultados, %s!\n", r.NomeUsuario)
	fmt.Fprintf(t.out, "Questionário realizado em %s\n\n", r.DataRealizacao.Format("02/01/2006 15:04"))
	fmt.Fprintln(t.out, "🏆 Ranking de Afinidade Política")
	for i, deputado := range r.RankingAfinidade {
		fmt.Fprintf(t.out, "%s %s (%s%s) — %.1f%%\n",
			colocacao(i),
			deputado.Nome,
			deputado.Partido,
			regiao(deputado.UF),
			deputado.AfinidadePercentual)
		fmt.Fprintf(t.out, "    coincidentes: %d | divergentes: %d | comparáveis: %d\n",
			deputado.VotosCoincidentes,
			deputado.VotosDivergentes,
			deputado.VotacoesComparaveis)
	}
	if len(estatisticas) > 0 {
		fmt.Fprintln(t.out, "\n📊 Resumo Estatístico")
		for _, e := range estatisticas {
			fmt.Fprintf(t.out, "  %s: %s\n", e.Label, e.Valor)
		}
	}
	fmt.Fprintln(t.out, "\nComandos: reiniciar | sair")
}

// As três primeiras colocações recebem medalhas, as demais o número.
func colocacao(indice int) string {
	switch indice {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return fmt.Sprintf("%dº", indice+1)
	}
}

func regiao(uf string) string {
	if uf == "" {
		return ""
	}
	return " - " + uf
}

func runCompasso(ctx context.Context, api compasso.QuizAPI, notifier notify.Notifier, log *zap.Logger) {
	c := compasso.New(api, notifier, &terminalQuiz{out: os.Stdout}, log)
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Compasso Político — digite seu nome para começar:")
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		linha := strings.TrimSpace(scanner.Text())

		if c.Fase() == compasso.FaseNome {
			if linha == "sair" {
				return
			}
			_ = c.Iniciar(ctx, linha)
			continue
		}

		switch strings.ToLower(linha) {
		case "sim":
			_ = c.Responder(c.Atual(), models.VotoSim)
		case "nao", "não":
			_ = c.Responder(c.Atual(), models.VotoNao)
		case "abstencao", "abstenção":
			_ = c.Responder(c.Atual(), models.VotoAbstencao)
		case "proxima", "próxima":
			c.Avancar()
		case "anterior":
			c.Voltar()
		case "finalizar":
			_ = c.Finalizar(ctx)
		case "reiniciar":
			c.Reiniciar()
			fmt.Println("Digite seu nome para começar:")
		case "sair":
			return
		default:
			fmt.Println("Comando não reconhecido.")
		}
	}
}
