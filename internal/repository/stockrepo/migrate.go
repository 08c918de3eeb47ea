package stockrepo

import (
	"context"
	"encoding/json"
	"strings"

	"gotire/internal/domain"
	apperror "gotire/internal/errors"
)

// LatestSchemaVersion é a versão alcançada depois de todas as migrações.
const LatestSchemaVersion = 2

type migration struct {
	version int
	name    string
	apply   func(ctx context.Context, s *Store) error
}

var migrations = []migration{
	{version: 1, name: "seed_default_statuses", apply: seedDefaultStatuses},
	{version: 2, name: "rewrite_legacy_ativo", apply: rewriteLegacyAtivo},
}

// migrate aplica, em ordem, as migrações com versão maior que a gravada.
// A versão é gravada depois de cada passo, então uma falha no meio retoma dali.
func (s *Store) migrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := m.apply(ctx, s); err != nil {
			s.logger.Error("Falha ao aplicar migração "+m.name, err)
			return err
		}
		if err := s.writeSchemaVersion(ctx, m.version); err != nil {
			return err
		}
		s.logger.Info("Migração aplicada.", map[string]interface{}{"version": m.version, "name": m.name})
	}
	return nil
}

// SchemaVersion devolve a versão de esquema gravada no backend.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schemaVersion(ctx)
}

func (s *Store) schemaVersion(ctx context.Context) (int, error) {
	data, err := s.backend.Read(ctx, KeySchemaVersion)
	if err != nil {
		return 0, apperror.NewStorageError("falha ao ler versão do esquema", err)
	}
	if len(data) == 0 {
		return 0, nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, apperror.NewStorageError("versão do esquema inválida", err)
	}
	return v, nil
}

func (s *Store) writeSchemaVersion(ctx context.Context, v int) error {
	data, _ := json.Marshal(v)
	if err := s.backend.Write(ctx, KeySchemaVersion, data); err != nil {
		return apperror.NewStorageError("falha ao gravar versão do esquema", err)
	}
	return nil
}

// seedDefaultStatuses garante os quatro status protegidos. Um status customizado
// já cadastrado com o mesmo nome é promovido a padrão.
func seedDefaultStatuses(ctx context.Context, s *Store) error {
	statuses, err := load[domain.TireStatus](ctx, s, KeyTireStatus)
	if err != nil {
		return err
	}

	for _, def := range domain.DefaultStatuses() {
		found := false
		for i := range statuses {
			if strings.EqualFold(statuses[i].Name, def.Name) {
				statuses[i].Name = def.Name
				statuses[i].IsDefault = true
				found = true
				break
			}
		}
		if !found {
			def.CreatedAt = s.now()
			statuses = append(statuses, def)
		}
	}
	return persist(ctx, s, KeyTireStatus, statuses)
}

// rewriteLegacyAtivo troca o status antigo "Ativo" por "Piloto".
func rewriteLegacyAtivo(ctx context.Context, s *Store) error {
	entries, err := load[domain.StockEntry](ctx, s, KeyStockEntries)
	if err != nil {
		return err
	}

	changed := 0
	for i := range entries {
		if entries[i].Status == domain.StatusLegacyAtivo {
			entries[i].Status = domain.StatusPiloto
			changed++
		}
	}
	if changed == 0 {
		return nil
	}

	s.logger.Info("Status legados reescritos.", map[string]interface{}{"count": changed})
	return persist(ctx, s, KeyStockEntries, entries)
}
