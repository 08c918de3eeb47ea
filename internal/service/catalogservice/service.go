// Package catalogservice aplica as regras de negócio do cadastro administrativo:
// modelos de pneu, containers e status.
package catalogservice

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"gotire/internal/domain"
	apperror "gotire/internal/errors"
	"gotire/internal/pkg/logger"
)

// CatalogRepository define o contrato que o Serviço de Cadastro espera do store.
type CatalogRepository interface {
	GetTireModels(ctx context.Context) ([]domain.TireModel, error)
	GetTireModelByID(ctx context.Context, id string) (domain.TireModel, error)
	SaveTireModel(ctx context.Context, m domain.TireModel) (domain.TireModel, error)
	UpdateTireModel(ctx context.Context, id string, upd domain.TireModelUpdate) (bool, error)
	DeleteTireModel(ctx context.Context, id string) error

	GetContainers(ctx context.Context) ([]domain.Container, error)
	GetContainerByID(ctx context.Context, id string) (domain.Container, error)
	SaveContainer(ctx context.Context, c domain.Container) (domain.Container, error)
	UpdateContainer(ctx context.Context, id string, upd domain.ContainerUpdate) (bool, error)
	DeleteContainer(ctx context.Context, id string) error

	GetTireStatuses(ctx context.Context) ([]domain.TireStatus, error)
	SaveTireStatus(ctx context.Context, st domain.TireStatus) (domain.TireStatus, error)
	UpdateTireStatus(ctx context.Context, id string, upd domain.TireStatusUpdate) (bool, error)
	DeleteTireStatus(ctx context.Context, id string) error
}

// Service é a estrutura que implementa o cadastro.
type Service struct {
	repo   CatalogRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Cadastro.
func NewService(repo CatalogRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// --- Modelos ---

func (s *Service) ListTireModels(ctx context.Context) ([]domain.TireModel, error) {
	return s.repo.GetTireModels(ctx)
}

func (s *Service) GetTireModel(ctx context.Context, id string) (domain.TireModel, error) {
	return s.repo.GetTireModelByID(ctx, id)
}

// CreateTireModel cadastra um modelo. Nomes são únicos sem diferenciar caixa, pois o
// casamento exato da importação depende disso.
func (s *Service) CreateTireModel(ctx context.Context, m domain.TireModel) (domain.TireModel, error) {
	s.logger.Debug("Iniciando criação de modelo no serviço.", map[string]interface{}{"name": m.Name})

	m.Name = strings.TrimSpace(m.Name)
	m.Code = strings.TrimSpace(m.Code)
	if err := validateName("modelo", m.Name); err != nil {
		s.logger.Warn("Falha na validação do nome do modelo.", map[string]interface{}{"name": m.Name, "error": err.Error()})
		return domain.TireModel{}, err
	}
	if !m.Type.Valid() {
		return domain.TireModel{}, apperror.NewValidationError("O tipo do modelo deve ser 'Slick' ou 'Wet'.")
	}
	if err := s.checkModelNameFree(ctx, m.Name, ""); err != nil {
		return domain.TireModel{}, err
	}

	created, err := s.repo.SaveTireModel(ctx, m)
	if err != nil {
		return domain.TireModel{}, err
	}
	s.logger.Info("Modelo criado com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

func (s *Service) UpdateTireModel(ctx context.Context, id string, upd domain.TireModelUpdate) (domain.TireModel, error) {
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if err := validateName("modelo", name); err != nil {
			return domain.TireModel{}, err
		}
		if err := s.checkModelNameFree(ctx, name, id); err != nil {
			return domain.TireModel{}, err
		}
		upd.Name = &name
	}
	if upd.Type != nil && !upd.Type.Valid() {
		return domain.TireModel{}, apperror.NewValidationError("O tipo do modelo deve ser 'Slick' ou 'Wet'.")
	}

	found, err := s.repo.UpdateTireModel(ctx, id, upd)
	if err != nil {
		return domain.TireModel{}, err
	}
	if !found {
		return domain.TireModel{}, apperror.NewNotFoundError(fmt.Sprintf("modelo com ID %s não encontrado", id))
	}
	s.logger.Info("Modelo atualizado com sucesso.", map[string]interface{}{"id": id})
	return s.repo.GetTireModelByID(ctx, id)
}

func (s *Service) DeleteTireModel(ctx context.Context, id string) error {
	if err := s.repo.DeleteTireModel(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Modelo removido com sucesso.", map[string]interface{}{"id": id})
	return nil
}

func (s *Service) checkModelNameFree(ctx context.Context, name, exceptID string) error {
	models, err := s.repo.GetTireModels(ctx)
	if err != nil {
		return err
	}
	for _, m := range models {
		if m.ID != exceptID && strings.EqualFold(m.Name, name) {
			return apperror.NewConflictError(fmt.Sprintf("modelo '%s' já existe", name))
		}
	}
	return nil
}

// --- Containers ---

func (s *Service) ListContainers(ctx context.Context) ([]domain.Container, error) {
	return s.repo.GetContainers(ctx)
}

func (s *Service) GetContainer(ctx context.Context, id string) (domain.Container, error) {
	return s.repo.GetContainerByID(ctx, id)
}

func (s *Service) CreateContainer(ctx context.Context, c domain.Container) (domain.Container, error) {
	s.logger.Debug("Iniciando criação de container no serviço.", map[string]interface{}{"name": c.Name})

	c.Name = strings.TrimSpace(c.Name)
	c.Location = strings.TrimSpace(c.Location)
	if err := validateName("container", c.Name); err != nil {
		s.logger.Warn("Falha na validação do nome do container.", map[string]interface{}{"name": c.Name, "error": err.Error()})
		return domain.Container{}, err
	}
	if c.Capacity < 0 {
		return domain.Container{}, apperror.NewValidationError("A capacidade do container não pode ser negativa.")
	}

	created, err := s.repo.SaveContainer(ctx, c)
	if err != nil {
		return domain.Container{}, err
	}
	s.logger.Info("Container criado com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

func (s *Service) UpdateContainer(ctx context.Context, id string, upd domain.ContainerUpdate) (domain.Container, error) {
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if err := validateName("container", name); err != nil {
			return domain.Container{}, err
		}
		upd.Name = &name
	}
	if upd.Capacity != nil && *upd.Capacity < 0 {
		return domain.Container{}, apperror.NewValidationError("A capacidade do container não pode ser negativa.")
	}

	found, err := s.repo.UpdateContainer(ctx, id, upd)
	if err != nil {
		return domain.Container{}, err
	}
	if !found {
		return domain.Container{}, apperror.NewNotFoundError(fmt.Sprintf("container com ID %s não encontrado", id))
	}
	s.logger.Info("Container atualizado com sucesso.", map[string]interface{}{"id": id})
	return s.repo.GetContainerByID(ctx, id)
}

func (s *Service) DeleteContainer(ctx context.Context, id string) error {
	if err := s.repo.DeleteContainer(ctx, id); err != nil {
		if apperror.IsConflict(err) {
			s.logger.Warn("Container ocupado não pode ser removido.", map[string]interface{}{"id": id})
		}
		return err
	}
	s.logger.Info("Container removido com sucesso.", map[string]interface{}{"id": id})
	return nil
}

// --- Status ---

func (s *Service) ListTireStatuses(ctx context.Context) ([]domain.TireStatus, error) {
	return s.repo.GetTireStatuses(ctx)
}

func (s *Service) CreateTireStatus(ctx context.Context, st domain.TireStatus) (domain.TireStatus, error) {
	st.Name = strings.TrimSpace(st.Name)
	if st.Name == "" || utf8.RuneCountInString(st.Name) > 50 {
		return domain.TireStatus{}, apperror.NewValidationError("O nome do status deve ter entre 1 e 50 caracteres.")
	}
	if st.Color == "" {
		st.Color = "#6b7280"
	}
	if !colorPattern.MatchString(st.Color) {
		return domain.TireStatus{}, apperror.NewValidationError("A cor deve estar no formato #rrggbb.")
	}

	created, err := s.repo.SaveTireStatus(ctx, st)
	if err != nil {
		return domain.TireStatus{}, err
	}
	s.logger.Info("Status criado com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

func (s *Service) UpdateTireStatus(ctx context.Context, id string, upd domain.TireStatusUpdate) (domain.TireStatus, error) {
	if upd.Color != nil && !colorPattern.MatchString(*upd.Color) {
		return domain.TireStatus{}, apperror.NewValidationError("A cor deve estar no formato #rrggbb.")
	}
	if upd.Name != nil && utf8.RuneCountInString(strings.TrimSpace(*upd.Name)) > 50 {
		return domain.TireStatus{}, apperror.NewValidationError("O nome do status deve ter entre 1 e 50 caracteres.")
	}

	found, err := s.repo.UpdateTireStatus(ctx, id, upd)
	if err != nil {
		return domain.TireStatus{}, err
	}
	if !found {
		return domain.TireStatus{}, apperror.NewNotFoundError(fmt.Sprintf("status com ID %s não encontrado", id))
	}

	statuses, err := s.repo.GetTireStatuses(ctx)
	if err != nil {
		return domain.TireStatus{}, err
	}
	for _, st := range statuses {
		if st.ID == id {
			return st, nil
		}
	}
	return domain.TireStatus{}, apperror.NewNotFoundError(fmt.Sprintf("status com ID %s não encontrado", id))
}

func (s *Service) DeleteTireStatus(ctx context.Context, id string) error {
	if err := s.repo.DeleteTireStatus(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Status removido com sucesso.", map[string]interface{}{"id": id})
	return nil
}

// validateName aplica a regra de nome do cadastro: entre 3 e 100 caracteres.
func validateName(kind, name string) error {
	if name == "" {
		return apperror.NewValidationError(fmt.Sprintf("O nome do %s não pode ser vazio.", kind))
	}
	if n := utf8.RuneCountInString(name); n < 3 || n > 100 {
		return apperror.NewValidationError(fmt.Sprintf("O nome do %s deve ter entre 3 e 100 caracteres.", kind))
	}
	return nil
}
