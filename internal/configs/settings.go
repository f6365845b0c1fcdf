package configs

import (
	"log"
	"os"
	"path/filepath"
)

type UserSettings struct {
	UserConfigsPath string
}

var UserWinkrbSettings *UserSettings

func init() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	// This is independent of the managed krb5.conf, so it is ok to init here.
	UserWinkrbSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "winkrb"),
	}
}
