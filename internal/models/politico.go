package models

const naoInformado = "não informado"

type Politico struct {
	ID      string `json:"id"`
	Nome    string `json:"nome"`
	Partido string `json:"partido"`
	Estado  string `json:"estado"`
	Cargo   string `json:"cargo"`
}

// Campos de exibição com fallback para registros incompletos.

func (p Politico) NomeExibicao() string {
	if p.Nome == "" {
		return "Nome " + naoInformado
	}
	return p.Nome
}

func (p Politico) PartidoExibicao() string {
	if p.Partido == "" {
		return "Partido " + naoInformado
	}
	return p.Partido
}

func (p Politico) EstadoExibicao() string {
	if p.Estado == "" {
		return "Estado " + naoInformado
	}
	return p.Estado
}

func (p Politico) CargoExibicao() string {
	if p.Cargo == "" {
		return "Cargo " + naoInformado
	}
	return p.Cargo
}

type PoliticoFiltros struct {
	Nome    string
	Partido string
	Estado  string
}

type Estatisticas struct {
	TotalPoliticos int `json:"total_politicos"`
	TotalPartidos  int `json:"total_partidos"`
	TotalEstados   int `json:"total_estados"`
	TotalVotacoes  int `json:"total_votacoes"`
}
