package workflow

import (
	"fmt"
	"time"

	"servicetrack/internal/app/ds"
	"servicetrack/internal/app/repository"
	"servicetrack/internal/app/role"
)

// Комментарии, записываемые в историю при системных переходах
const (
	CommentCreated  = "Заявка создана"
	CommentSent     = "Отправлено в сервисный центр"
	CommentReceived = "Заявка принята в сервисном центре"
)

// Actor — идентичность вызывающего, передается границей (HTTP-слоем)
// после авторизации. Ядро не читает сессию само.
type Actor struct {
	UserID    uint
	Role      role.Role
	CompanyID *uint // обязательна для дилера
}

// Engine — единственный путь смены статуса заявки. Каждая смена статуса
// сопровождается записью в историю, обе записи идут в одной транзакции.
type Engine struct {
	repo *repository.Repository
}

func New(repo *repository.Repository) *Engine {
	return &Engine{repo: repo}
}

// CreateRequestInput — поля новой заявки
type CreateRequestInput struct {
	SerialNumber       string
	ProductID          uint
	PurchaseDate       time.Time
	WarrantyStatus     string
	ProblemDescription string
	CustomerName       string
	CustomerPhone      string
	CustomerEmail      string
	AdditionalNotes    string
}

func validateCreate(input CreateRequestInput, actor Actor) error {
	switch {
	case input.SerialNumber == "":
		return newValidationError("не указан серийный номер товара")
	case input.ProductID == 0:
		return newValidationError("не указан товар")
	case input.PurchaseDate.IsZero():
		return newValidationError("не указана дата покупки")
	case !ds.IsValidWarrantyStatus(input.WarrantyStatus):
		return newValidationError("неверный статус гарантии")
	case input.ProblemDescription == "":
		return newValidationError("не заполнено описание неисправности")
	// данные покупателя обязательны только при создании заявки
	case input.CustomerName == "":
		return newValidationError("не указано ФИО покупателя")
	case input.CustomerPhone == "":
		return newValidationError("не указан телефон покупателя")
	}
	if actor.Role == role.Dealer && actor.CompanyID == nil {
		return newValidationError("дилер не привязан к компании")
	}
	return nil
}

// CreateRequest создает заявку со статусом accepted_by_dealer и первой
// записью истории (old_status = NULL)
func (e *Engine) CreateRequest(input CreateRequestInput, actor Actor) (*ds.RepairRequest, error) {
	if err := validateCreate(input, actor); err != nil {
		return nil, err
	}

	exists, err := e.repo.ProductExists(input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("проверка товара: %w", err)
	}
	if !exists {
		return nil, newValidationError("товар не найден")
	}

	request := &ds.RepairRequest{
		Status:             ds.StatusAcceptedByDealer,
		SerialNumber:       input.SerialNumber,
		ProductID:          input.ProductID,
		PurchaseDate:       input.PurchaseDate,
		WarrantyStatus:     input.WarrantyStatus,
		ProblemDescription: input.ProblemDescription,
		CustomerName:       optional(input.CustomerName),
		CustomerPhone:      optional(input.CustomerPhone),
		CustomerEmail:      optional(input.CustomerEmail),
		AdditionalNotes:    optional(input.AdditionalNotes),
		CreatedAt:          time.Now(),
		CreatedByID:        &actor.UserID,
		DealerCompanyID:    actor.CompanyID,
	}

	err = e.repo.Transaction(func(tx *repository.Repository) error {
		if err := tx.CreateRequest(request); err != nil {
			return err
		}
		return tx.AppendHistory(&ds.RequestHistory{
			RepairRequestID: request.ID,
			ChangedByID:     &actor.UserID,
			OldStatus:       nil,
			NewStatus:       ds.StatusAcceptedByDealer,
			Comment:         optional(CommentCreated),
		})
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// BatchAndSend формирует пакет из выбранных заявок и переводит каждую
// в sent_to_service. Операция атомарна: либо пакет создан и все заявки
// обновлены с записями истории, либо ничего не произошло.
func (e *Engine) BatchAndSend(requestIDs []uint, actor Actor) (*ds.Package, int, error) {
	ids := dedupe(requestIDs)
	if len(ids) == 0 {
		return nil, 0, newValidationError("не выбрано ни одной заявки")
	}
	if actor.Role == role.Dealer && actor.CompanyID == nil {
		return nil, 0, newValidationError("дилер не привязан к компании")
	}

	pkg := &ds.Package{
		Status:          ds.PackageSent,
		CreatedAt:       time.Now(),
		CreatedByID:     &actor.UserID,
		DealerCompanyID: actor.CompanyID,
	}
	sent := 0

	err := e.repo.Transaction(func(tx *repository.Repository) error {
		requests, err := tx.GetRequestsByIDs(ids)
		if err != nil {
			return err
		}
		if len(requests) != len(ids) {
			return newValidationError("часть выбранных заявок не найдена")
		}

		for i := range requests {
			r := &requests[i]
			if r.Status != ds.StatusAcceptedByDealer && r.Status != ds.StatusWaiting {
				return newValidationError(fmt.Sprintf("заявка #%d не может быть отправлена (статус %s)", r.ID, r.Status))
			}
			// состав пакета фиксируется один раз, заявка не переезжает в другой пакет
			if r.PackageID != nil {
				return newValidationError(fmt.Sprintf("заявка #%d уже входит в пакет #%d", r.ID, *r.PackageID))
			}
			if actor.Role == role.Dealer {
				if r.DealerCompanyID == nil || *r.DealerCompanyID != *actor.CompanyID {
					return newValidationError(fmt.Sprintf("заявка #%d принадлежит другой компании", r.ID))
				}
			}
		}

		if err := tx.CreatePackage(pkg); err != nil {
			return err
		}

		now := time.Now()
		for i := range requests {
			r := &requests[i]
			oldStatus := r.Status

			r.Status = ds.StatusSentToService
			r.SentAt = &now
			r.PackageID = &pkg.ID
			if err := tx.SaveRequest(r); err != nil {
				return err
			}

			err = tx.AppendHistory(&ds.RequestHistory{
				RepairRequestID: r.ID,
				ChangedByID:     &actor.UserID,
				OldStatus:       &oldStatus,
				NewStatus:       ds.StatusSentToService,
				Comment:         optional(CommentSent),
			})
			if err != nil {
				return err
			}
			sent++
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return pkg, sent, nil
}

// AcceptPackage принимает пакет в сервисном центре. Выбор должен
// совпадать с составом пакета полностью — принять часть заявок нельзя.
func (e *Engine) AcceptPackage(packageID uint, selectedIDs []uint, actor Actor) error {
	selected := dedupe(selectedIDs)

	return e.repo.Transaction(func(tx *repository.Repository) error {
		pkg, err := tx.GetPackageByID(packageID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		if pkg.Status != ds.PackageSent && pkg.Status != ds.PackageProcessing {
			return newValidationError(fmt.Sprintf("пакет в статусе «%s» не может быть принят", ds.PackageStatusDisplay[pkg.Status]))
		}

		members, err := tx.GetPackageRequestIDs(packageID)
		if err != nil {
			return err
		}
		if !sameIDSet(members, selected) {
			return newValidationError("выбраны не все заявки пакета")
		}

		requests, err := tx.GetPackageRequests(packageID)
		if err != nil {
			return err
		}
		for i := range requests {
			r := &requests[i]
			oldStatus := r.Status

			// заявка логически "получена": возвращаемся к статусу приемки
			r.Status = ds.StatusAcceptedByDealer
			if err := tx.SaveRequest(r); err != nil {
				return err
			}

			err = tx.AppendHistory(&ds.RequestHistory{
				RepairRequestID: r.ID,
				ChangedByID:     &actor.UserID,
				OldStatus:       &oldStatus,
				NewStatus:       ds.StatusAcceptedByDealer,
				Comment:         optional(CommentReceived),
			})
			if err != nil {
				return err
			}
		}

		// пакет принят только когда статус приемки у всех заявок
		accepted, err := tx.IsPackageFullyAccepted(packageID)
		if err != nil {
			return err
		}
		if accepted {
			pkg.Status = ds.PackageAccepted
			return tx.SavePackage(pkg)
		}
		return nil
	})
}

// UpdateStatus — свободный переход статуса (любой → любой, как в исходном
// процессе). Статус сохраняется всегда; запись истории добавляется, только
// если статус изменился или передан непустой комментарий.
func (e *Engine) UpdateStatus(requestID uint, newStatus, comment string, actor Actor) error {
	if !ds.IsValidRequestStatus(newStatus) {
		return newValidationError("неверный статус заявки")
	}

	return e.repo.Transaction(func(tx *repository.Repository) error {
		request, err := tx.GetRequestByID(requestID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}

		oldStatus := request.Status
		request.Status = newStatus
		if err := tx.SaveRequest(request); err != nil {
			return err
		}

		if oldStatus == newStatus && comment == "" {
			return nil
		}
		return tx.AppendHistory(&ds.RequestHistory{
			RepairRequestID: request.ID,
			ChangedByID:     &actor.UserID,
			OldStatus:       &oldStatus,
			NewStatus:       newStatus,
			Comment:         optional(comment),
		})
	})
}

// EditDetailsInput — разрешенные к изменению поля диагностики/ремонта.
// Только явный список типизированных полей, произвольные имена не принимаются.
type EditDetailsInput struct {
	Status               *string
	CustomerName         *string
	CustomerPhone        *string
	CustomerEmail        *string
	AdditionalNotes      *string
	DiagnosticDate       *time.Time
	DiagnosticEmployee   *string
	DiagnosticConclusion *string
	Decision             *string
	RepairType           *string
	RepairSubtype        *string
	RepairCost           *float64
	PartsCost            *float64
}

func (in EditDetailsInput) validate() error {
	if in.Status != nil && !ds.IsValidRequestStatus(*in.Status) {
		return newValidationError("неверный статус заявки")
	}
	if in.Decision != nil {
		switch *in.Decision {
		case ds.DecisionRepair, ds.DecisionReplace, ds.DecisionRejectWarranty:
		default:
			return newValidationError("неверное решение по заявке")
		}
	}
	return nil
}

// EditDetails обновляет поля диагностики/ремонта и пишет ровно одну запись
// истории за вызов. Комментарием записи служит итоговое значение
// дополнительных примечаний — так ведет себя исходный процесс.
func (e *Engine) EditDetails(requestID uint, input EditDetailsInput, actor Actor) error {
	if err := input.validate(); err != nil {
		return err
	}

	return e.repo.Transaction(func(tx *repository.Repository) error {
		request, err := tx.GetRequestByID(requestID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}

		oldStatus := request.Status
		applyDetails(request, input)
		if err := tx.SaveRequest(request); err != nil {
			return err
		}

		return tx.AppendHistory(&ds.RequestHistory{
			RepairRequestID: request.ID,
			ChangedByID:     &actor.UserID,
			OldStatus:       &oldStatus,
			NewStatus:       request.Status,
			Comment:         request.AdditionalNotes,
		})
	})
}

func applyDetails(request *ds.RepairRequest, input EditDetailsInput) {
	if input.Status != nil {
		request.Status = *input.Status
	}
	if input.CustomerName != nil {
		request.CustomerName = input.CustomerName
	}
	if input.CustomerPhone != nil {
		request.CustomerPhone = input.CustomerPhone
	}
	if input.CustomerEmail != nil {
		request.CustomerEmail = input.CustomerEmail
	}
	if input.AdditionalNotes != nil {
		request.AdditionalNotes = input.AdditionalNotes
	}
	if input.DiagnosticDate != nil {
		request.DiagnosticDate = input.DiagnosticDate
	}
	if input.DiagnosticEmployee != nil {
		request.DiagnosticEmployee = input.DiagnosticEmployee
	}
	if input.DiagnosticConclusion != nil {
		request.DiagnosticConclusion = input.DiagnosticConclusion
	}
	if input.Decision != nil {
		request.Decision = input.Decision
	}
	if input.RepairType != nil {
		request.RepairType = input.RepairType
	}
	if input.RepairSubtype != nil {
		request.RepairSubtype = input.RepairSubtype
	}
	if input.RepairCost != nil {
		request.RepairCost = input.RepairCost
	}
	if input.PartsCost != nil {
		request.PartsCost = input.PartsCost
	}
}

// ReturnPackage возвращает пакет дилеру с указанием причины
func (e *Engine) ReturnPackage(packageID uint, reason string, actor Actor) error {
	return e.repo.Transaction(func(tx *repository.Repository) error {
		pkg, err := tx.GetPackageByID(packageID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		if pkg.Status == ds.PackageReturned {
			return newValidationError("пакет уже возвращен дилеру")
		}

		now := time.Now()
		pkg.Status = ds.PackageReturned
		pkg.ReturnedAt = &now
		pkg.ReturnReason = optional(reason)
		return tx.SavePackage(pkg)
	})
}

// TrackBySerial — публичный трекинг: заявка по серийному номеру
// плюс последовательность переходов статуса
func (e *Engine) TrackBySerial(serial string) (*ds.RepairRequest, []ds.RequestHistory, error) {
	request, err := e.repo.GetRequestBySerial(serial)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	transitions, err := e.repo.GetRequestTransitions(request.ID)
	if err != nil {
		return nil, nil, err
	}
	return request, transitions, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}

func sameIDSet(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[uint]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	for _, id := range b {
		if !set[id] {
			return false
		}
	}
	return true
}
