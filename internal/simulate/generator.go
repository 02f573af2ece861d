package simulate

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"math/big"

	"github.com/greenbin/bunrigo/pkg/logger"
)

// Student id space: 5 digits, 10000 to 99999.
const (
	studentIDMin   = 10000
	studentIDRange = 90000
)

// generateStudents creates the requested number of unique 5-digit ids.
func generateStudents(ctx context.Context, config *Config) []Student {
	logger.Get().Info(ctx, "generating simulated students", logger.Int("students", config.Students))

	seen := make(map[string]struct{}, config.Students)
	students := make([]Student, 0, config.Students)
	for len(students) < config.Students {
		id := randomStudentID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		students = append(students, Student{ID: id})
	}
	return students
}

// randomStudentID returns a random 5-digit id using crypto/rand.
func randomStudentID() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(studentIDRange))
	v := studentIDMin + n.Int64()

	buf := [5]byte{}
	for i := 4; i >= 0; i-- {
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[:])
}

// fakeImage returns a small JPEG-flavored payload in the data-URL shape
// the capture endpoint expects. The stub classifier never inspects the
// pixels, only the encoding has to hold up.
func fakeImage() string {
	payload := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 0x4a, 0x46, 0x49, 0x46}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(payload)
}
