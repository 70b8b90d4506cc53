package workflow

import (
	"testing"
	"time"

	"servicetrack/internal/app/ds"
	"servicetrack/internal/app/repository"
	"servicetrack/internal/app/role"
	"servicetrack/internal/app/testutil"
)

type testEnv struct {
	engine  *Engine
	repo    *repository.Repository
	dealer  Actor
	service Actor
	product *ds.Product
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repo := repository.NewWithDB(db)

	company := testutil.SeedCompany(t, db, "D001", "Автозвук Юг")
	product := testutil.SeedProduct(t, db, "AZ-12D2")
	dealerUser := testutil.SeedUser(t, db, "dealer1", role.Dealer, &company.ID)
	serviceUser := testutil.SeedUser(t, db, "service1", role.ServiceCenter, nil)

	return &testEnv{
		engine: New(repo),
		repo:   repo,
		dealer: Actor{
			UserID:    dealerUser.ID,
			Role:      role.Dealer,
			CompanyID: dealerUser.DealerCompanyID,
		},
		service: Actor{
			UserID: serviceUser.ID,
			Role:   role.ServiceCenter,
		},
		product: product,
	}
}

func (env *testEnv) createRequest(t *testing.T, serial string) *ds.RepairRequest {
	t.Helper()
	request, err := env.engine.CreateRequest(CreateRequestInput{
		SerialNumber:       serial,
		ProductID:          env.product.ID,
		PurchaseDate:       time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		WarrantyStatus:     ds.WarrantyRepair,
		ProblemDescription: "Не играет один канал",
		CustomerName:       "Иванов Иван",
		CustomerPhone:      "+79990001122",
	}, env.dealer)
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	return request
}

func (env *testEnv) history(t *testing.T, requestID uint) []ds.RequestHistory {
	t.Helper()
	history, err := env.repo.GetRequestHistory(requestID)
	if err != nil {
		t.Fatalf("GetRequestHistory failed: %v", err)
	}
	return history
}

func (env *testEnv) reload(t *testing.T, requestID uint) *ds.RepairRequest {
	t.Helper()
	request, err := env.repo.GetRequestByID(requestID)
	if err != nil {
		t.Fatalf("GetRequestByID failed: %v", err)
	}
	return request
}

func TestCreateRequestWritesCreationHistory(t *testing.T) {
	env := setupEnv(t)

	request := env.createRequest(t, "SN-001")

	if request.Status != ds.StatusAcceptedByDealer {
		t.Errorf("expected status %s, got %s", ds.StatusAcceptedByDealer, request.Status)
	}
	if request.SentAt != nil || request.PackageID != nil {
		t.Error("new request must not have sent_at or package")
	}

	history := env.history(t, request.ID)
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
	if history[0].OldStatus != nil {
		t.Error("creation entry must have NULL old_status")
	}
	if history[0].NewStatus != ds.StatusAcceptedByDealer {
		t.Errorf("creation entry new_status = %s", history[0].NewStatus)
	}
	if history[0].Comment == nil || *history[0].Comment != CommentCreated {
		t.Errorf("creation entry comment = %v", history[0].Comment)
	}
}

func TestCreateRequestValidation(t *testing.T) {
	env := setupEnv(t)

	valid := CreateRequestInput{
		SerialNumber:       "SN-100",
		ProductID:          env.product.ID,
		PurchaseDate:       time.Now(),
		WarrantyStatus:     ds.WarrantyRepair,
		ProblemDescription: "шум",
		CustomerName:       "Петров",
		CustomerPhone:      "+70000000000",
	}

	cases := []struct {
		name   string
		mutate func(*CreateRequestInput)
	}{
		{"no serial", func(in *CreateRequestInput) { in.SerialNumber = "" }},
		{"no product", func(in *CreateRequestInput) { in.ProductID = 0 }},
		{"no purchase date", func(in *CreateRequestInput) { in.PurchaseDate = time.Time{} }},
		{"bad warranty status", func(in *CreateRequestInput) { in.WarrantyStatus = "unknown" }},
		{"no problem", func(in *CreateRequestInput) { in.ProblemDescription = "" }},
		{"no customer name", func(in *CreateRequestInput) { in.CustomerName = "" }},
		{"no customer phone", func(in *CreateRequestInput) { in.CustomerPhone = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)
			_, err := env.engine.CreateRequest(input, env.dealer)
			if !IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	t.Run("unknown product", func(t *testing.T) {
		input := valid
		input.ProductID = 99999
		_, err := env.engine.CreateRequest(input, env.dealer)
		if !IsValidation(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestBatchAndSendEmptySelection(t *testing.T) {
	env := setupEnv(t)

	_, _, err := env.engine.BatchAndSend(nil, env.dealer)
	if !IsValidation(err) {
		t.Errorf("expected validation error for empty selection, got %v", err)
	}

	// нули и дубликаты схлопываются до пустого выбора
	_, _, err = env.engine.BatchAndSend([]uint{0, 0}, env.dealer)
	if !IsValidation(err) {
		t.Errorf("expected validation error for zero ids, got %v", err)
	}

	packages, err := env.repo.ListPackages(repository.PackageFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(packages) != 0 {
		t.Errorf("no package must be created on failed batch, got %d", len(packages))
	}
}

func TestBatchAndSendAllOrNothing(t *testing.T) {
	env := setupEnv(t)

	ok := env.createRequest(t, "SN-010")
	bad := env.createRequest(t, "SN-011")
	if err := env.engine.UpdateStatus(bad.ID, ds.StatusClosed, "", env.service); err != nil {
		t.Fatal(err)
	}

	_, _, err := env.engine.BatchAndSend([]uint{ok.ID, bad.ID}, env.dealer)
	if !IsValidation(err) {
		t.Fatalf("expected validation error for ineligible request, got %v", err)
	}

	// ни пакета, ни изменений статусов, ни новых записей истории
	packages, err := env.repo.ListPackages(repository.PackageFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(packages) != 0 {
		t.Errorf("failed batch must not create a package, got %d", len(packages))
	}

	reloaded := env.reload(t, ok.ID)
	if reloaded.Status != ds.StatusAcceptedByDealer {
		t.Errorf("request status changed on failed batch: %s", reloaded.Status)
	}
	if reloaded.SentAt != nil || reloaded.PackageID != nil {
		t.Error("request must not be marked sent on failed batch")
	}
	if history := env.history(t, ok.ID); len(history) != 1 {
		t.Errorf("expected 1 history entry after failed batch, got %d", len(history))
	}
}

func TestBatchAndSendMarksRequestsSent(t *testing.T) {
	env := setupEnv(t)

	first := env.createRequest(t, "SN-020")
	second := env.createRequest(t, "SN-021")
	if err := env.engine.UpdateStatus(second.ID, ds.StatusWaiting, "", env.service); err != nil {
		t.Fatal(err)
	}

	pkg, sent, err := env.engine.BatchAndSend([]uint{first.ID, second.ID, first.ID}, env.dealer)
	if err != nil {
		t.Fatalf("BatchAndSend failed: %v", err)
	}
	if sent != 2 {
		t.Errorf("expected 2 sent, got %d", sent)
	}
	if pkg.Status != ds.PackageSent {
		t.Errorf("package status = %s", pkg.Status)
	}

	for _, id := range []uint{first.ID, second.ID} {
		request := env.reload(t, id)
		if request.Status != ds.StatusSentToService {
			t.Errorf("request %d status = %s", id, request.Status)
		}
		if request.SentAt == nil {
			t.Errorf("request %d must have sent_at", id)
		}
		if request.PackageID == nil || *request.PackageID != pkg.ID {
			t.Errorf("request %d must reference package %d", id, pkg.ID)
		}

		history := env.history(t, id)
		last := history[len(history)-1]
		if last.NewStatus != ds.StatusSentToService {
			t.Errorf("request %d last history new_status = %s", id, last.NewStatus)
		}
		if last.Comment == nil || *last.Comment != CommentSent {
			t.Errorf("request %d last history comment = %v", id, last.Comment)
		}
	}
}

func TestBatchAndSendForeignCompanyRejected(t *testing.T) {
	env := setupEnv(t)

	request := env.createRequest(t, "SN-030")

	otherCompanyID := env.dealerWithOtherCompany(t)
	foreign := Actor{UserID: env.dealer.UserID, Role: role.Dealer, CompanyID: &otherCompanyID}

	_, _, err := env.engine.BatchAndSend([]uint{request.ID}, foreign)
	if !IsValidation(err) {
		t.Errorf("expected validation error for foreign company, got %v", err)
	}
}

func (env *testEnv) dealerWithOtherCompany(t *testing.T) uint {
	t.Helper()
	company := &ds.DealerCompany{Code: "D999", Name: "Другой дилер", IsActive: true}
	if err := env.repo.CreateCompany(company); err != nil {
		t.Fatal(err)
	}
	return company.ID
}

func TestAcceptPackageRequiresFullSet(t *testing.T) {
	env := setupEnv(t)

	first := env.createRequest(t, "SN-040")
	second := env.createRequest(t, "SN-041")
	pkg, _, err := env.engine.BatchAndSend([]uint{first.ID, second.ID}, env.dealer)
	if err != nil {
		t.Fatal(err)
	}

	// подмножество отклоняется, статусы не меняются
	err = env.engine.AcceptPackage(pkg.ID, []uint{first.ID}, env.service)
	if !IsValidation(err) {
		t.Fatalf("expected validation error for subset, got %v", err)
	}
	for _, id := range []uint{first.ID, second.ID} {
		if request := env.reload(t, id); request.Status != ds.StatusSentToService {
			t.Errorf("request %d status changed on failed accept: %s", id, request.Status)
		}
	}
	reloadedPkg, err := env.repo.GetPackageByID(pkg.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloadedPkg.Status != ds.PackageSent {
		t.Errorf("package status changed on failed accept: %s", reloadedPkg.Status)
	}

	// чужая заявка в выборе тоже отклоняется
	stranger := env.createRequest(t, "SN-042")
	err = env.engine.AcceptPackage(pkg.ID, []uint{first.ID, stranger.ID}, env.service)
	if !IsValidation(err) {
		t.Fatalf("expected validation error for foreign request, got %v", err)
	}
}

func TestAcceptPackageFullSet(t *testing.T) {
	env := setupEnv(t)

	first := env.createRequest(t, "SN-050")
	second := env.createRequest(t, "SN-051")
	pkg, _, err := env.engine.BatchAndSend([]uint{first.ID, second.ID}, env.dealer)
	if err != nil {
		t.Fatal(err)
	}

	// порядок и дубликаты в выборе не важны, важно равенство множеств
	err = env.engine.AcceptPackage(pkg.ID, []uint{second.ID, first.ID, second.ID}, env.service)
	if err != nil {
		t.Fatalf("AcceptPackage failed: %v", err)
	}

	for _, id := range []uint{first.ID, second.ID} {
		request := env.reload(t, id)
		if request.Status != ds.StatusAcceptedByDealer {
			t.Errorf("request %d status = %s", id, request.Status)
		}
		history := env.history(t, id)
		last := history[len(history)-1]
		if last.Comment == nil || *last.Comment != CommentReceived {
			t.Errorf("request %d last comment = %v", id, last.Comment)
		}
	}

	reloadedPkg, err := env.repo.GetPackageByID(pkg.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloadedPkg.Status != ds.PackageAccepted {
		t.Errorf("package status = %s, want %s", reloadedPkg.Status, ds.PackageAccepted)
	}
}

func TestBatchAndSendRejectsRebatching(t *testing.T) {
	env := setupEnv(t)

	request := env.createRequest(t, "SN-055")
	pkg, _, err := env.engine.BatchAndSend([]uint{request.ID}, env.dealer)
	if err != nil {
		t.Fatal(err)
	}
	if err := env.engine.AcceptPackage(pkg.ID, []uint{request.ID}, env.service); err != nil {
		t.Fatal(err)
	}

	// после приемки статус снова accepted_by_dealer, но заявка остается
	// в своем пакете и в новый не попадает
	_, _, err = env.engine.BatchAndSend([]uint{request.ID}, env.dealer)
	if !IsValidation(err) {
		t.Fatalf("expected validation error for re-batching, got %v", err)
	}

	reloaded := env.reload(t, request.ID)
	if reloaded.PackageID == nil || *reloaded.PackageID != pkg.ID {
		t.Errorf("request must stay in package %d, got %v", pkg.ID, reloaded.PackageID)
	}
	count, err := env.repo.GetPackageRequestCount(pkg.ID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("package membership changed, count = %d", count)
	}
	packages, err := env.repo.ListPackages(repository.PackageFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(packages) != 1 {
		t.Errorf("re-batching must not create a second package, got %d", len(packages))
	}
}

func TestAcceptPackageOnlyOnce(t *testing.T) {
	env := setupEnv(t)

	request := env.createRequest(t, "SN-056")
	pkg, _, err := env.engine.BatchAndSend([]uint{request.ID}, env.dealer)
	if err != nil {
		t.Fatal(err)
	}
	if err := env.engine.AcceptPackage(pkg.ID, []uint{request.ID}, env.service); err != nil {
		t.Fatal(err)
	}
	historyLen := len(env.history(t, request.ID))

	// повторная приемка отклоняется без новых записей истории
	err = env.engine.AcceptPackage(pkg.ID, []uint{request.ID}, env.service)
	if !IsValidation(err) {
		t.Fatalf("expected validation error on second accept, got %v", err)
	}
	if got := len(env.history(t, request.ID)); got != historyLen {
		t.Errorf("second accept must not add history, got %d entries (was %d)", got, historyLen)
	}

	// возвращенный пакет тоже нельзя принять
	returned := env.createRequest(t, "SN-057")
	returnedPkg, _, err := env.engine.BatchAndSend([]uint{returned.ID}, env.dealer)
	if err != nil {
		t.Fatal(err)
	}
	if err := env.engine.ReturnPackage(returnedPkg.ID, "Повреждение при доставке", env.service); err != nil {
		t.Fatal(err)
	}
	if err := env.engine.AcceptPackage(returnedPkg.ID, []uint{returned.ID}, env.service); !IsValidation(err) {
		t.Errorf("expected validation error for returned package, got %v", err)
	}
}

func TestAcceptPackageNotFound(t *testing.T) {
	env := setupEnv(t)

	err := env.engine.AcceptPackage(99999, []uint{1}, env.service)
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateStatusHistoryRules(t *testing.T) {
	env := setupEnv(t)
	request := env.createRequest(t, "SN-060")

	// неизвестный статус отклоняется
	if err := env.engine.UpdateStatus(request.ID, "destroyed", "", env.service); !IsValidation(err) {
		t.Errorf("expected validation error for unknown status, got %v", err)
	}

	// смена статуса пишет запись со старым и новым значением
	if err := env.engine.UpdateStatus(request.ID, ds.StatusWaiting, "к отправке", env.service); err != nil {
		t.Fatal(err)
	}
	history := env.history(t, request.ID)
	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}
	last := history[1]
	if last.OldStatus == nil || *last.OldStatus != ds.StatusAcceptedByDealer {
		t.Errorf("old_status = %v", last.OldStatus)
	}
	if last.NewStatus != ds.StatusWaiting {
		t.Errorf("new_status = %s", last.NewStatus)
	}
	if last.Comment == nil || *last.Comment != "к отправке" {
		t.Errorf("comment = %v", last.Comment)
	}

	// тот же статус без комментария — истории нет
	if err := env.engine.UpdateStatus(request.ID, ds.StatusWaiting, "", env.service); err != nil {
		t.Fatal(err)
	}
	if history = env.history(t, request.ID); len(history) != 2 {
		t.Errorf("same status without comment must not add history, got %d entries", len(history))
	}

	// тот же статус с комментарием — запись добавляется
	if err := env.engine.UpdateStatus(request.ID, ds.StatusWaiting, "уточнение", env.service); err != nil {
		t.Fatal(err)
	}
	if history = env.history(t, request.ID); len(history) != 3 {
		t.Errorf("same status with comment must add history, got %d entries", len(history))
	}

	if err := env.engine.UpdateStatus(99999, ds.StatusWaiting, "", env.service); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEditDetailsWritesSingleEntry(t *testing.T) {
	env := setupEnv(t)
	request := env.createRequest(t, "SN-070")

	conclusion := "Сгорела катушка"
	decision := ds.DecisionRepair
	cost := 4500.0
	notes := "Запчасти заказаны"
	err := env.engine.EditDetails(request.ID, EditDetailsInput{
		DiagnosticConclusion: &conclusion,
		Decision:             &decision,
		RepairCost:           &cost,
		AdditionalNotes:      &notes,
	}, env.service)
	if err != nil {
		t.Fatalf("EditDetails failed: %v", err)
	}

	reloaded := env.reload(t, request.ID)
	if reloaded.DiagnosticConclusion == nil || *reloaded.DiagnosticConclusion != conclusion {
		t.Error("diagnostic conclusion not applied")
	}
	if reloaded.RepairCost == nil || *reloaded.RepairCost != cost {
		t.Error("repair cost not applied")
	}

	history := env.history(t, request.ID)
	if len(history) != 2 {
		t.Fatalf("edit must add exactly one history entry, got %d total", len(history))
	}
	// комментарием служит итоговое значение примечаний
	last := history[1]
	if last.Comment == nil || *last.Comment != notes {
		t.Errorf("edit history comment = %v, want %q", last.Comment, notes)
	}
	if last.OldStatus == nil || *last.OldStatus != ds.StatusAcceptedByDealer || last.NewStatus != ds.StatusAcceptedByDealer {
		t.Error("edit without status change must keep old and new status equal")
	}

	// неверное решение отклоняется без записи
	badDecision := "explode"
	err = env.engine.EditDetails(request.ID, EditDetailsInput{Decision: &badDecision}, env.service)
	if !IsValidation(err) {
		t.Errorf("expected validation error for bad decision, got %v", err)
	}
	if history = env.history(t, request.ID); len(history) != 2 {
		t.Errorf("failed edit must not add history, got %d", len(history))
	}
}

func TestTrackBySerial(t *testing.T) {
	env := setupEnv(t)
	request := env.createRequest(t, "SN-0080-AbC")

	// комментарий без смены статуса попадает в полную историю, но не в трекинг
	if err := env.engine.UpdateStatus(request.ID, ds.StatusAcceptedByDealer, "внутренняя пометка", env.service); err != nil {
		t.Fatal(err)
	}
	if err := env.engine.UpdateStatus(request.ID, ds.StatusClosed, "", env.service); err != nil {
		t.Fatal(err)
	}

	// регистр серийного номера не важен
	found, transitions, err := env.engine.TrackBySerial("sn-0080-abc")
	if err != nil {
		t.Fatalf("TrackBySerial failed: %v", err)
	}
	if found.ID != request.ID {
		t.Errorf("found request %d, want %d", found.ID, request.ID)
	}

	if len(transitions) != 2 {
		t.Fatalf("expected 2 transitions (create, close), got %d", len(transitions))
	}
	for _, tr := range transitions {
		if tr.OldStatus != nil && *tr.OldStatus == tr.NewStatus {
			t.Error("tracking must not include comment-only entries")
		}
	}

	full := env.history(t, request.ID)
	if len(full) != 3 {
		t.Errorf("expected 3 full history entries, got %d", len(full))
	}

	if _, _, err = env.engine.TrackBySerial("missing"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReturnPackage(t *testing.T) {
	env := setupEnv(t)

	request := env.createRequest(t, "SN-090")
	pkg, _, err := env.engine.BatchAndSend([]uint{request.ID}, env.dealer)
	if err != nil {
		t.Fatal(err)
	}

	if err := env.engine.ReturnPackage(pkg.ID, "Недовложение", env.service); err != nil {
		t.Fatalf("ReturnPackage failed: %v", err)
	}

	reloaded, err := env.repo.GetPackageByID(pkg.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Status != ds.PackageReturned {
		t.Errorf("package status = %s", reloaded.Status)
	}
	if reloaded.ReturnedAt == nil {
		t.Error("returned package must have returned_at")
	}
	if reloaded.ReturnReason == nil || *reloaded.ReturnReason != "Недовложение" {
		t.Errorf("return reason = %v", reloaded.ReturnReason)
	}

	// повторный возврат отклоняется
	if err := env.engine.ReturnPackage(pkg.ID, "еще раз", env.service); !IsValidation(err) {
		t.Errorf("expected validation error on second return, got %v", err)
	}
}
