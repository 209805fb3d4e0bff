package engine

import "errors"

// Классификация исходов платёжного ядра. Каждое проверяемое условие
// движков сводится к одной из этих ошибок; всё неклассифицированное
// наружу выходит как ErrInternal, уже после отката транзакции.
var (
	// ErrNotFound - подходящей сущности нет: работы, профиля или
	// права вызывающего на операцию.
	ErrNotFound = errors.New("сущность не найдена")

	// ErrInvalidInput - сумма отсутствует, не число или не положительна.
	ErrInvalidInput = errors.New("некорректные входные данные")

	// ErrInsufficientFunds - баланс плательщика не превышает цену работы
	// строго. Оплата "под ноль" отклоняется.
	ErrInsufficientFunds = errors.New("недостаточно средств")

	// ErrDepositCapExceeded - пополнение больше 25% текущей задолженности.
	ErrDepositCapExceeded = errors.New("превышен лимит пополнения")

	// ErrInternal - сбой хранилища или транзакции.
	ErrInternal = errors.New("внутренняя ошибка")
)

// classified сообщает, относится ли err к известной категории ядра.
func classified(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrDepositCapExceeded)
}
