package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iris-civica/iris-client/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL string) (*Client, *[]time.Duration) {
	c := New(baseURL, zap.NewNop())
	delays := &[]time.Duration{}
	c.sleep = func(_ context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
	return c, delays
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestRequestNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL)
	var out map[string]any
	err := c.Request(context.Background(), http.MethodDelete, "/politicos/42", nil, &out)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestRequestHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL)
	err := c.Request(context.Background(), http.MethodGet, "/politicos/", nil, nil)
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, KindServer, httpErr.Kind())
	assert.Equal(t, KindServer, KindOf(err))
	assert.False(t, Retriable(err))
}

func TestErrorKinds(t *testing.T) {
	casos := map[int]ErrorKind{
		http.StatusUnauthorized:    KindAuth,
		http.StatusForbidden:       KindAuth,
		http.StatusNotFound:        KindNotFound,
		http.StatusTooManyRequests: KindRateLimit,
		http.StatusBadGateway:      KindServer,
		http.StatusBadRequest:      KindGeneric,
	}
	for status, kind := range casos {
		assert.Equal(t, kind, (&HTTPError{Status: status}).Kind(), "status %d", status)
	}
	assert.Equal(t, KindNetwork, KindOf(&TransportError{Endpoint: "/politicos/", Err: errors.New("connection refused")}))
	assert.Equal(t, KindGeneric, KindOf(errors.New("connection refused")), "erro sem tipo não é de transporte")
}

func TestRetryNetworkFailureAttemptsAndDelays(t *testing.T) {
	// servidor fechado: toda tentativa falha no transporte
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, delays := newTestClient(url)
	err := c.RequestWithRetry(context.Background(), http.MethodGet, "/prototipo/", nil, nil, 3)
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *delays)
}

func TestRetryDoesNotRepeatBodyParseErrors(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c, delays := newTestClient(srv.URL)
	var out map[string]any
	err := c.RequestWithRetry(context.Background(), http.MethodGet, "/prototipo/", nil, &out, 3)
	require.Error(t, err)
	assert.Equal(t, 1, hits, "corpo malformado em 2xx não é falha de transporte")
	assert.Empty(t, *delays)
	assert.Equal(t, KindGeneric, KindOf(err))
	assert.False(t, Retriable(err))
}

func TestRetryDoesNotRepeatApplicationErrors(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, delays := newTestClient(srv.URL)
	err := c.RequestWithRetry(context.Background(), http.MethodGet, "/prototipo/", nil, nil, 5)
	require.Error(t, err)
	assert.Equal(t, 1, hits)
	assert.Empty(t, *delays)
}

func TestRetryRecoversAfterTransientFailure(t *testing.T) {
	var calls int
	c, delays := newTestClient("http://iris.test")
	c.http = &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("connection reset")
		}
		rec := httptest.NewRecorder()
		rec.WriteString(`{"votacoes":[],"total_votacoes":0}`)
		return rec.Result(), nil
	})}

	err := c.RequestWithRetry(context.Background(), http.MethodGet, "/prototipo/", nil, nil, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *delays)
}

func TestObterVotacoesCache(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_ = json.NewEncoder(w).Encode(models.PrototipoResponse{
			Votacoes: []models.Votacao{{ID: 1, Titulo: "Votação"}},
		})
	}))
	defer srv.Close()

	agora := time.Now()
	c, _ := newTestClient(srv.URL)
	c.now = func() time.Time { return agora }

	ctx := context.Background()
	primeiro, err := c.ObterVotacoes(ctx)
	require.NoError(t, err)
	segundo, err := c.ObterVotacoes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, hits, "segunda chamada dentro do TTL deve vir do cache")
	assert.Same(t, primeiro, segundo)

	agora = agora.Add(cacheTTL + time.Second)
	_, err = c.ObterVotacoes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, hits, "TTL expirado força novo fetch")

	c.LimparCache()
	_, err = c.ObterVotacoes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, hits, "cache invalidado força novo fetch")
}

func TestCalcularAfinidadeValidaAntesDaRede(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_ = json.NewEncoder(w).Encode(models.ResultadoQuestionario{})
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL)
	ctx := context.Background()

	casos := []struct {
		nome string
		req  *models.QuestionarioRequest
		want error
	}{
		{"payload nulo", nil, models.ErrVotosVazios},
		{"nome em branco", &models.QuestionarioRequest{NomeUsuario: "   ", Votos: []models.VotoEscolha{{VotacaoID: 1, Voto: models.VotoSim}}}, models.ErrNomeObrigatorio},
		{"sem votos", &models.QuestionarioRequest{NomeUsuario: "Ana"}, models.ErrVotosVazios},
		{"voto inválido", &models.QuestionarioRequest{NomeUsuario: "Ana", Votos: []models.VotoEscolha{{VotacaoID: 1, Voto: "TALVEZ"}}}, models.ErrVotoInvalido},
		{"votacao inválida", &models.QuestionarioRequest{NomeUsuario: "Ana", Votos: []models.VotoEscolha{{VotacaoID: 0, Voto: models.VotoSim}}}, models.ErrVotacaoInvalida},
	}
	for _, caso := range casos {
		t.Run(caso.nome, func(t *testing.T) {
			_, err := c.CalcularAfinidade(ctx, caso.req)
			require.ErrorIs(t, err, caso.want)
		})
	}
	assert.Equal(t, 0, hits, "payload inválido não pode gerar chamada de rede")
}

func TestCalcularAfinidade(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/prototipo/calcular-afinidade", r.URL.Path)
		var req models.QuestionarioRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Ana", req.NomeUsuario)
		_ = json.NewEncoder(w).Encode(models.ResultadoQuestionario{
			NomeUsuario: "Ana",
			RankingAfinidade: []models.DeputadoAfinidade{
				{Nome: "Dep A", AfinidadePercentual: 87.5},
			},
		})
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL)
	resultado, err := c.CalcularAfinidade(context.Background(), &models.QuestionarioRequest{
		NomeUsuario: "Ana",
		Votos:       []models.VotoEscolha{{VotacaoID: 1, Voto: models.VotoSim}},
	})
	require.NoError(t, err)
	require.Len(t, resultado.RankingAfinidade, 1)
	assert.Equal(t, 87.5, resultado.RankingAfinidade[0].AfinidadePercentual)
}

func politicosFixture() []models.Politico {
	return []models.Politico{
		{ID: "1", Nome: "Maria Silva", Partido: "ABC", Estado: "SP"},
		{ID: "2", Nome: "João Souza", Partido: "XYZ", Estado: "RJ"},
		{ID: "3", Nome: "Marina Costa", Partido: "ABC", Estado: "SP"},
	}
}

func TestFiltrarPoliticos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(politicosFixture())
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL)
	ctx := context.Background()

	porNome, err := c.FiltrarPoliticos(ctx, models.PoliticoFiltros{Nome: "mari"})
	require.NoError(t, err)
	require.Len(t, porNome, 2)

	porPartidoEEstado, err := c.FiltrarPoliticos(ctx, models.PoliticoFiltros{Partido: "ABC", Estado: "SP"})
	require.NoError(t, err)
	require.Len(t, porPartidoEEstado, 2)

	vazio, err := c.FiltrarPoliticos(ctx, models.PoliticoFiltros{Partido: "ABC", Estado: "RJ"})
	require.NoError(t, err)
	assert.Empty(t, vazio)
}

func TestPartidosEEstadosDistintosOrdenados(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(politicosFixture())
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL)
	ctx := context.Background()

	partidos, err := c.Partidos(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC", "XYZ"}, partidos)

	estados, err := c.Estados(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"RJ", "SP"}, estados)
}

func TestEstatisticasDegradaParaZeros(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, _ := newTestClient(url)
	stats := c.Estatisticas(context.Background())
	assert.Equal(t, models.Estatisticas{}, stats)
}
