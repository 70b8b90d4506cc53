package dto

import "time"

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Товары (Products) ============

type ProductResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Brand       string `json:"brand,omitempty"`
	Series      string `json:"series,omitempty"`
	Category    string `json:"category"`
	Size        string `json:"size,omitempty"`
	PowerRMS    string `json:"power_rms,omitempty"`
	PowerMax    string `json:"power_max,omitempty"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
}

type CreateProductRequest struct {
	Name     string `json:"name" binding:"required"`
	Brand    string `json:"brand"`
	Series   string `json:"series"`
	Category string `json:"category" binding:"required,oneof=subwoofer amplifier speaker component coaxial midrange tweeter accessory"`
	Size     string `json:"size"`
	PowerRMS string `json:"power_rms"`
	PowerMax string `json:"power_max"`
}

type UpdateProductRequest struct {
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Series   string `json:"series"`
	Category string `json:"category" binding:"omitempty,oneof=subwoofer amplifier speaker component coaxial midrange tweeter accessory"`
	Size     string `json:"size"`
	PowerRMS string `json:"power_rms"`
	PowerMax string `json:"power_max"`
}

// ============ Заявки (Repair Requests) ============

type CreateRepairRequest struct {
	SerialNumber       string `json:"serial_number" binding:"required"`
	ProductID          uint   `json:"product_id" binding:"required"`
	PurchaseDate       string `json:"purchase_date" binding:"required"` // формат 2006-01-02
	WarrantyStatus     string `json:"warranty_status" binding:"required,oneof=warranty paid_repair diagnostics"`
	ProblemDescription string `json:"problem_description" binding:"required"`
	CustomerName       string `json:"customer_name" binding:"required"`
	CustomerPhone      string `json:"customer_phone" binding:"required"`
	CustomerEmail      string `json:"customer_email"`
	AdditionalNotes    string `json:"additional_notes"`
}

type RepairRequestResponse struct {
	ID                 uint       `json:"id"`
	Status             string     `json:"status"`
	StatusDisplay      string     `json:"status_display"`
	SerialNumber       string     `json:"serial_number"`
	Product            string     `json:"product"`
	PurchaseDate       string     `json:"purchase_date"`
	WarrantyStatus     string     `json:"warranty_status"`
	ProblemDescription string     `json:"problem_description"`
	CustomerName       string     `json:"customer_name,omitempty"`
	CustomerPhone      string     `json:"customer_phone,omitempty"`
	CustomerEmail      string     `json:"customer_email,omitempty"`
	AdditionalNotes    string     `json:"additional_notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	SentAt             *time.Time `json:"sent_at,omitempty"`
	PackageID          *uint      `json:"package_id,omitempty"`

	DiagnosticDate       *time.Time `json:"diagnostic_date,omitempty"`
	DiagnosticEmployee   string     `json:"diagnostic_employee,omitempty"`
	DiagnosticConclusion string     `json:"diagnostic_conclusion,omitempty"`
	Decision             string     `json:"decision,omitempty"`
	RepairType           string     `json:"repair_type,omitempty"`
	RepairSubtype        string     `json:"repair_subtype,omitempty"`
	RepairCost           *float64   `json:"repair_cost,omitempty"`
	PartsCost            *float64   `json:"parts_cost,omitempty"`
}

type RepairRequestListResponse struct {
	Requests []RepairRequestResponse `json:"requests"`
	Total    int                     `json:"total"`
}

type UpdateStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

type EditDetailsRequest struct {
	Status               *string  `json:"status"`
	CustomerName         *string  `json:"customer_name"`
	CustomerPhone        *string  `json:"customer_phone"`
	CustomerEmail        *string  `json:"customer_email"`
	AdditionalNotes      *string  `json:"additional_notes"`
	DiagnosticDate       *string  `json:"diagnostic_date"` // формат 2006-01-02
	DiagnosticEmployee   *string  `json:"diagnostic_employee"`
	DiagnosticConclusion *string  `json:"diagnostic_conclusion"`
	Decision             *string  `json:"decision"`
	RepairType           *string  `json:"repair_type"`
	RepairSubtype        *string  `json:"repair_subtype"`
	RepairCost           *float64 `json:"repair_cost"`
	PartsCost            *float64 `json:"parts_cost"`
}

// ============ Пакеты (Packages) ============

type BatchSendRequest struct {
	RequestIDs []uint `json:"request_ids" binding:"required"`
}

type BatchSendResponse struct {
	PackageID uint `json:"package_id"`
	SentCount int  `json:"sent_count"`
}

type AcceptPackageRequest struct {
	SelectedIDs []uint `json:"selected_ids" binding:"required"`
}

type ReturnPackageRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type PackageResponse struct {
	ID            uint       `json:"id"`
	Status        string     `json:"status"`
	StatusDisplay string     `json:"status_display"`
	CreatedAt     time.Time  `json:"created_at"`
	RequestCount  int        `json:"request_count"`
	ReturnedAt    *time.Time `json:"returned_at,omitempty"`
	ReturnReason  string     `json:"return_reason,omitempty"`

	Requests []RepairRequestResponse `json:"requests,omitempty"` // только для GET одного пакета
}

type PackageListResponse struct {
	Packages []PackageResponse `json:"packages"`
	Total    int               `json:"total"`
}

// ============ История и трекинг ============

type HistoryEntryResponse struct {
	OldStatus string    `json:"old_status,omitempty"`
	NewStatus string    `json:"new_status"`
	Display   string    `json:"display"`
	Comment   string    `json:"comment,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

type TrackingResponse struct {
	SerialNumber  string                 `json:"serial_number"`
	Product       string                 `json:"product"`
	Status        string                 `json:"status"`
	StatusDisplay string                 `json:"status_display"`
	Transitions   []HistoryEntryResponse `json:"transitions"`
}

// ============ Компании (Dealer Companies) ============

type CompanyResponse struct {
	ID     uint   `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}

type CreateCompanyRequest struct {
	Code         string `json:"code" binding:"required"`
	Name         string `json:"name" binding:"required"`
	INN          string `json:"inn"`
	FullName     string `json:"full_name"`
	RelationType string `json:"relation_type"`
	Region       string `json:"region"`
}

// ============ Пользователи (Users) ============

type UserResponse struct {
	ID            uint   `json:"id"`
	Login         string `json:"login"`
	FullName      string `json:"full_name"`
	Role          string `json:"role"`
	DealerCompany string `json:"dealer_company,omitempty"`
}

type RegisterRequest struct {
	Login           string `json:"login" binding:"required,min=3,max=50"`
	Password        string `json:"password" binding:"required,min=6"`
	FullName        string `json:"full_name" binding:"required"`
	Role            int    `json:"role"`
	DealerCompanyID *uint  `json:"dealer_company_id"`
}

type UpdateUserRequest struct {
	FullName string `json:"full_name"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}
