package services

import (
	"os"
	"testing"

	"github.com/AnshRaj112/placement-tracker-backend/pkg/utils"
)

func TestMain(m *testing.M) {
	utils.PasswordParams = utils.Argon2Params{Time: 1, Memory: 8 * 1024, Parallelism: 1}
	os.Exit(m.Run())
}
