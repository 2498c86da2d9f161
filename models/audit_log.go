package models

import (
	"database/sql/driver"
	"encoding/json"
	"net"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit actions written by the lifecycle operations
const (
	AuditActionMarketInitialized = "market.initialized"
	AuditActionBetPlaced         = "bet.placed"
	AuditActionMarketLocked      = "market.locked"
	AuditActionMarketSettled     = "market.settled"
	AuditActionWinningsClaimed   = "winnings.claimed"
	AuditActionDeposit           = "account.deposit"
)

// Audit resource types
const (
	AuditResourceMarket  = "market"
	AuditResourceBet     = "bet"
	AuditResourceAccount = "account"
)

// AuditValues represents values for audit logging
type AuditValues map[string]interface{}

// AuditLog is an append-only trail of state changes
type AuditLog struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Actor        string      `gorm:"type:varchar(42);index:idx_audit_logs_actor" json:"actor"`
	Action       string      `gorm:"type:varchar(50);not null" json:"action"`
	ResourceType string      `gorm:"type:varchar(50);not null" json:"resource_type"`
	ResourceID   string      `gorm:"type:varchar(64);index" json:"resource_id"`
	OldValues    AuditValues `gorm:"type:jsonb" json:"old_values"`
	NewValues    AuditValues `gorm:"type:jsonb" json:"new_values"`
	IPAddress    string      `gorm:"type:varchar(45)" json:"ip_address,omitempty"`
	UserAgent    string      `gorm:"type:text" json:"user_agent"`
	CreatedAt    time.Time   `gorm:"autoCreateTime;index:idx_audit_logs_created_at" json:"created_at"`
}

// TableName specifies the table name for AuditLog model
func (*AuditLog) TableName() string {
	return "audit_logs"
}

// BeforeCreate sets up the model before creation
func (al *AuditLog) BeforeCreate(_ *gorm.DB) error {
	if al.ID == uuid.Nil {
		al.ID = uuid.New()
	}
	return nil
}

// Value implements driver.Valuer interface for AuditValues
func (av AuditValues) Value() (driver.Value, error) {
	if av == nil {
		return nil, nil
	}
	return json.Marshal(av)
}

// Scan implements sql.Scanner interface for AuditValues
func (av *AuditValues) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, av)
	case string:
		return json.Unmarshal([]byte(v), av)
	}
	return nil
}

// IsSystemAction checks if the entry was written without a caller
func (al *AuditLog) IsSystemAction() bool {
	return al.Actor == ""
}

// GetChangedFields returns the fields that were changed
func (al *AuditLog) GetChangedFields() []string {
	if al.OldValues == nil || al.NewValues == nil {
		return []string{}
	}

	var changedFields []string
	for field := range al.NewValues {
		if oldVal, exists := al.OldValues[field]; !exists || oldVal != al.NewValues[field] {
			changedFields = append(changedFields, field)
		}
	}

	return changedFields
}

// Validate performs validation on the audit log model
func (al *AuditLog) Validate() error {
	if al.Action == "" {
		return ErrInvalidAuditAction
	}
	if al.ResourceType == "" {
		return ErrInvalidResourceType
	}
	return nil
}

// RequestMeta carries caller network details into audit entries
type RequestMeta struct {
	IP        string
	UserAgent string
}

// NewAuditLog creates an audit log entry for a caller's action
func NewAuditLog(actor, action, resourceType, resourceID string,
	oldValues, newValues AuditValues, meta RequestMeta) *AuditLog {
	return &AuditLog{
		Actor:        actor,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		OldValues:    oldValues,
		NewValues:    newValues,
		IPAddress:    normalizeIP(meta.IP),
		UserAgent:    meta.UserAgent,
	}
}

// MarketSnapshot captures the audited fields of a market
func MarketSnapshot(m *Market) AuditValues {
	return AuditValues{
		"status":          string(m.Status),
		"pool_a":          m.PoolA,
		"pool_b":          m.PoolB,
		"total_pool":      m.TotalPool,
		"winning_outcome": uint8(m.WinningOutcome),
	}
}

func normalizeIP(s string) string {
	if ip := net.ParseIP(s); ip != nil {
		return ip.String()
	}
	return ""
}
