package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/iris-civica/iris-client/internal/client"
	"github.com/iris-civica/iris-client/internal/models"
	"github.com/iris-civica/iris-client/internal/notify"
	"github.com/iris-civica/iris-client/pkg/debounce"
	"go.uber.org/zap"
)

const buscaDebounce = 300 * time.Millisecond

func runPoliticos(ctx context.Context, cl *client.Client, notifier notify.Notifier, log *zap.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	filtros := models.PoliticoFiltros{}

	recarregar := func() {
		politicos, err := cl.FiltrarPoliticos(ctx, filtros)
		if err != nil {
			log.Warn("failed to load politicos", zap.Error(err))
			notifier.Erro("Erro ao carregar políticos. Tente novamente.")
			return
		}
		renderPoliticos(politicos)
	}
	// como no campo de busca da página, a digitação não dispara uma
	// requisição por tecla
	buscar := debounce.New(buscaDebounce, recarregar)

	recarregar()
	fmt.Println("Comandos: listar | buscar <nome> | partido <sigla> | estado <uf> | ver <id> | partidos | estados | estatisticas | sair")
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		linha := strings.TrimSpace(scanner.Text())
		comando, arg, _ := strings.Cut(linha, " ")
		switch comando {
		case "listar":
			filtros = models.PoliticoFiltros{}
			recarregar()
		case "buscar":
			filtros.Nome = arg
			buscar()
		case "partido":
			filtros.Partido = arg
			recarregar()
		case "estado":
			filtros.Estado = arg
			recarregar()
		case "ver":
			politico, err := cl.BuscarPolitico(ctx, arg)
			if err != nil {
				notifier.Erro("Erro ao carregar detalhes do político.")
				continue
			}
			fmt.Printf("%s\n  Partido: %s\n  Estado: %s\n  Cargo: %s\n",
				politico.NomeExibicao(),
				politico.PartidoExibicao(),
				politico.EstadoExibicao(),
				politico.CargoExibicao())
		case "partidos":
			listarValores(ctx, cl.Partidos, notifier)
		case "estados":
			listarValores(ctx, cl.Estados, notifier)
		case "estatisticas":
			stats := cl.Estatisticas(ctx)
			fmt.Printf("Políticos: %d | Partidos: %d | Estados: %d | Votações: %d\n",
				stats.TotalPoliticos, stats.TotalPartidos, stats.TotalEstados, stats.TotalVotacoes)
		case "sair":
			return
		default:
			fmt.Println("Comando não reconhecido.")
		}
	}
}

func renderPoliticos(politicos []models.Politico) {
	if len(politicos) == 0 {
		fmt.Println("Nenhum político encontrado.")
		return
	}
	for _, p := range politicos {
		fmt.Printf("• %s — %s - %s (%s)\n",
			p.NomeExibicao(), p.PartidoExibicao(), p.EstadoExibicao(), p.CargoExibicao())
	}
}

func listarValores(ctx context.Context, op func(context.Context) ([]string, error), notifier notify.Notifier) {
	valores, err := op(ctx)
	if err != nil {
		notifier.Erro("Erro ao carregar filtros.")
		return
	}
	fmt.Println(strings.Join(valores, ", "))
}
