// Package seed carrega o cadastro inicial (modelos, containers e status) de um
// arquivo YAML. A aplicação é idempotente: itens cujo nome já existe são ignorados.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"gotire/internal/domain"
	"gotire/internal/pkg/logger"
)

// Catalog é o conteúdo do arquivo de seed.
type Catalog struct {
	TireModels []TireModel `yaml:"tire_models"`
	Containers []Container `yaml:"containers"`
	Statuses   []Status    `yaml:"statuses"`
}

type TireModel struct {
	Name string `yaml:"name"`
	Code string `yaml:"code"`
	Type string `yaml:"type"`
}

type Container struct {
	Name     string `yaml:"name"`
	Location string `yaml:"location"`
	Capacity int    `yaml:"capacity"`
}

type Status struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Target é o serviço de cadastro que recebe o seed.
type Target interface {
	ListTireModels(ctx context.Context) ([]domain.TireModel, error)
	CreateTireModel(ctx context.Context, m domain.TireModel) (domain.TireModel, error)
	ListContainers(ctx context.Context) ([]domain.Container, error)
	CreateContainer(ctx context.Context, c domain.Container) (domain.Container, error)
	ListTireStatuses(ctx context.Context) ([]domain.TireStatus, error)
	CreateTireStatus(ctx context.Context, st domain.TireStatus) (domain.TireStatus, error)
}

// Result conta os itens criados por Apply.
type Result struct {
	TireModels int
	Containers int
	Statuses   int
}

// Parse decodifica o YAML. Campos desconhecidos são erro, para pegar erros de digitação.
func Parse(r io.Reader) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if err == io.EOF {
			return Catalog{}, nil
		}
		return Catalog{}, fmt.Errorf("seed inválido: %w", err)
	}
	return c, nil
}

// LoadFile lê e decodifica o arquivo de seed.
func LoadFile(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("abrir seed %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Apply cria no cadastro os itens ainda inexistentes (comparando nomes sem caixa).
func Apply(ctx context.Context, c Catalog, target Target, log logger.Logger) (Result, error) {
	var res Result

	models, err := target.ListTireModels(ctx)
	if err != nil {
		return res, err
	}
	existing := names(len(models), func(i int) string { return models[i].Name })
	for _, m := range c.TireModels {
		if existing[key(m.Name)] {
			continue
		}
		if _, err := target.CreateTireModel(ctx, domain.TireModel{Name: m.Name, Code: m.Code, Type: domain.TireType(m.Type)}); err != nil {
			return res, fmt.Errorf("seed do modelo %q: %w", m.Name, err)
		}
		existing[key(m.Name)] = true
		res.TireModels++
	}

	containers, err := target.ListContainers(ctx)
	if err != nil {
		return res, err
	}
	existing = names(len(containers), func(i int) string { return containers[i].Name })
	for _, ct := range c.Containers {
		if existing[key(ct.Name)] {
			continue
		}
		if _, err := target.CreateContainer(ctx, domain.Container{Name: ct.Name, Location: ct.Location, Capacity: ct.Capacity}); err != nil {
			return res, fmt.Errorf("seed do container %q: %w", ct.Name, err)
		}
		existing[key(ct.Name)] = true
		res.Containers++
	}

	statuses, err := target.ListTireStatuses(ctx)
	if err != nil {
		return res, err
	}
	existing = names(len(statuses), func(i int) string { return statuses[i].Name })
	for _, st := range c.Statuses {
		if existing[key(st.Name)] {
			continue
		}
		if _, err := target.CreateTireStatus(ctx, domain.TireStatus{Name: st.Name, Color: st.Color}); err != nil {
			return res, fmt.Errorf("seed do status %q: %w", st.Name, err)
		}
		existing[key(st.Name)] = true
		res.Statuses++
	}

	log.Info("Seed do cadastro aplicado.", map[string]interface{}{
		"tire_models": res.TireModels,
		"containers":  res.Containers,
		"statuses":    res.Statuses,
	})
	return res, nil
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func names(n int, at func(int) string) map[string]bool {
	out := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		out[key(at(i))] = true
	}
	return out
}
