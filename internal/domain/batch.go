package domain

// ItemOutcome é o resultado de um item dentro de uma operação em lote.
type ItemOutcome struct {
	Barcode string `json:"barcode"`
	OK      bool   `json:"ok"`
	Reason  string `json:"reason,omitempty"`
}

// BatchResult acumula os resultados de uma operação em lote de melhor esforço.
type BatchResult struct {
	Success int           `json:"success"`
	Errors  int           `json:"errors"`
	Items   []ItemOutcome `json:"items"`
}

// Ok registra um item aplicado.
func (r *BatchResult) Ok(barcode string) {
	r.Success++
	r.Items = append(r.Items, ItemOutcome{Barcode: barcode, OK: true})
}

// Fail registra um item rejeitado com o motivo.
func (r *BatchResult) Fail(barcode, reason string) {
	r.Errors++
	r.Items = append(r.Items, ItemOutcome{Barcode: barcode, Reason: reason})
}

// Reasons devolve as mensagens dos itens rejeitados, na ordem de avaliação.
func (r BatchResult) Reasons() []string {
	var out []string
	for _, it := range r.Items {
		if !it.OK {
			out = append(out, it.Barcode+": "+it.Reason)
		}
	}
	return out
}

// ParseResult é a saída do parser de importação em massa. Erros e avisos são
// consultivos: o chamador decide se grava apenas o subconjunto válido.
type ParseResult struct {
	Entries  []StockEntry `json:"entries"`
	Errors   []string     `json:"errors"`
	Warnings []string     `json:"warnings"`
}

// MoveRequest move entradas para outro container.
type MoveRequest struct {
	Barcodes    []string `json:"barcodes"`
	ContainerID string   `json:"containerId"`
	Reason      string   `json:"reason"`
}

// TransferRequest entrega pneus novos a um piloto.
type TransferRequest struct {
	Barcodes  []string `json:"barcodes"`
	Pilot     string   `json:"pilot"`
	Team      string   `json:"team"`
	Notes     string   `json:"notes"`
	SessionID string   `json:"sessionId"`
}

// StatusRequest altera o status de entradas.
type StatusRequest struct {
	Barcodes []string `json:"barcodes"`
	Status   Status   `json:"status"`
	Reason   string   `json:"reason"`
}

// RegisterRequest é a entrada manual de um único pneu (formulário).
type RegisterRequest struct {
	Barcode     string `json:"barcode"`
	ModelID     string `json:"modelId"`
	ContainerID string `json:"containerId"`
	SessionID   string `json:"sessionId"`
}

// ImportResult é o resultado de uma importação em massa: o relatório do parser
// mais a quantidade de entradas efetivamente gravadas.
type ImportResult struct {
	ParseResult
	Imported int `json:"imported"`
}
