package role

// Role определяет роль пользователя в системе
type Role int

const (
	Dealer        Role = iota // дилер: создает заявки и пакеты
	ServiceCenter             // сервисный центр: принимает пакеты, ведет диагностику
)

func (r Role) String() string {
	switch r {
	case Dealer:
		return "dealer"
	case ServiceCenter:
		return "service_center"
	}
	return "unknown"
}
