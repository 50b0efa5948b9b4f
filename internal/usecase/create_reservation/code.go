package create_reservation

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/m04kA/FoodMap-ReservationService/internal/domain"
)

// generateCode генерирует короткий код бронирования вида R-7GJ4KQ.
// Алфавит исключает визуально похожие символы (0/O, 1/I/L).
func generateCode() (string, error) {
	alphabet := []rune(domain.CodeAlphabet)
	max := big.NewInt(int64(len(alphabet)))

	buf := make([]rune, domain.CodeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("%w: failed to generate reservation code: %v", ErrInternal, err)
		}
		buf[i] = alphabet[n.Int64()]
	}

	return domain.CodePrefix + string(buf), nil
}
