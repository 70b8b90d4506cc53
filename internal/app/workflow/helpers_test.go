package workflow

import (
	"testing"
	"time"

	"servicetrack/internal/app/ds"
	"servicetrack/internal/app/role"
)

func TestDedupe(t *testing.T) {
	got := dedupe([]uint{3, 0, 1, 3, 2, 1, 0})
	want := []uint{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("dedupe = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("dedupe = %v, want %v", got, want)
		}
	}

	if got := dedupe(nil); len(got) != 0 {
		t.Errorf("dedupe(nil) = %v", got)
	}
	if got := dedupe([]uint{0, 0, 0}); len(got) != 0 {
		t.Errorf("dedupe(zeros) = %v", got)
	}
}

func TestSameIDSet(t *testing.T) {
	cases := []struct {
		name string
		a, b []uint
		want bool
	}{
		{"equal same order", []uint{1, 2, 3}, []uint{1, 2, 3}, true},
		{"equal different order", []uint{1, 2, 3}, []uint{3, 1, 2}, true},
		{"subset", []uint{1, 2, 3}, []uint{1, 2}, false},
		{"superset", []uint{1, 2}, []uint{1, 2, 3}, false},
		{"disjoint element", []uint{1, 2}, []uint{1, 4}, false},
		{"both empty", nil, nil, true},
		{"one empty", []uint{1}, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sameIDSet(tc.a, tc.b); got != tc.want {
				t.Errorf("sameIDSet(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestValidateCreateDealerCompany(t *testing.T) {
	input := CreateRequestInput{
		SerialNumber:       "SN-1",
		ProductID:          1,
		PurchaseDate:       time.Now(),
		WarrantyStatus:     ds.WarrantyRepair,
		ProblemDescription: "не включается",
		CustomerName:       "Сидоров",
		CustomerPhone:      "+71234567890",
	}

	// дилер без компании не может создать заявку
	dealer := Actor{UserID: 1, Role: role.Dealer}
	if err := validateCreate(input, dealer); !IsValidation(err) {
		t.Errorf("expected validation error for dealer without company, got %v", err)
	}

	companyID := uint(7)
	dealer.CompanyID = &companyID
	if err := validateCreate(input, dealer); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	// для сервисного центра компания не обязательна
	service := Actor{UserID: 2, Role: role.ServiceCenter}
	if err := validateCreate(input, service); err != nil {
		t.Errorf("unexpected error for service center: %v", err)
	}
}

func TestEditDetailsInputValidate(t *testing.T) {
	good := ds.DecisionReplace
	if err := (EditDetailsInput{Decision: &good}).validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := "melt"
	if err := (EditDetailsInput{Decision: &bad}).validate(); !IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}

	badStatus := "vanished"
	if err := (EditDetailsInput{Status: &badStatus}).validate(); !IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}
