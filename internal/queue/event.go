// Package queue defines message payloads exchanged over the message broker.
package queue

// JobStageAdvancedEvent is published whenever a save moves a job card
// to a new workflow stage.  It carries enough for downstream consumers
// to log or notify without querying the primary database.
type JobStageAdvancedEvent struct {
	JobCardID      string `json:"job_card_id"`
	GarageID       string `json:"garage_id"`
	CustomerName   string `json:"customer_name"`
	RegistrationNo string `json:"registration_no"`
	FromStage      string `json:"from_stage"`
	ToStage        string `json:"to_stage"`
	Percent        int    `json:"percent"`
	NextAction     string `json:"next_action"`
	AdvancedAt     string `json:"advanced_at"`
}

// InvoiceIssuedEvent is published when a ready-to-bill job card is
// invoiced.
type InvoiceIssuedEvent struct {
	InvoiceID      string `json:"invoice_id"`
	InvoiceNo      string `json:"invoice_no"`
	JobCardID      string `json:"job_card_id"`
	GarageID       string `json:"garage_id"`
	CustomerName   string `json:"customer_name"`
	RegistrationNo string `json:"registration_no"`
	LaborCharge    string `json:"labor_charge"`
	PartsSubtotal  string `json:"parts_subtotal"`
	TaxTotal       string `json:"tax_total"`
	GrandTotal     string `json:"grand_total"`
	IssuedAt       string `json:"issued_at"`
}
