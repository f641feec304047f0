// FILE: lixenwraith/siteconfig/example/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/siteconfig"
)

const siteINI = `[MAIN]
SITE_ROOT = {_DIRNAMEOFFILE_}/..
LIB_DIR   = {SITE_ROOT}/lib
BASE_URL  = {_APPURL_}/

[db]
host     = 127.0.0.1
port     = 5432
timeout  = 5s
replicas = db1,db2

[cs-project]
api_authtoken = SECRET123

[test]
TOKEN = {cs-project/api_authtoken}
`

// DBConfig is the typed view of the [db] section
type DBConfig struct {
	Host     string        `ini:"host" validate:"required,ip"`
	Port     int           `ini:"port" validate:"min=1,max=65535"`
	Timeout  time.Duration `ini:"timeout"`
	Replicas []string      `ini:"replicas"`
}

func main() {
	dir, err := os.MkdirTemp("", "siteconfig-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	confDir := filepath.Join(dir, "conf")
	if err := os.MkdirAll(confDir, 0755); err != nil {
		log.Fatal(err)
	}
	path := filepath.Join(confDir, "site.ini")
	if err := os.WriteFile(path, []byte(siteINI), 0644); err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	cfg, err := siteconfig.NewBuilder().
		WithFile(path).
		WithScriptPath("/app/index.php").
		WithLogger(logger).
		WithValidator(func(c *siteconfig.Config) error {
			_, err := c.Value("MAIN", "SITE_ROOT")
			return err
		}).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	root, _ := cfg.Value("MAIN", "SITE_ROOT")
	lib, _ := cfg.Value("MAIN", "LIB_DIR")
	base, _ := cfg.Value("MAIN", "BASE_URL")
	token, _ := cfg.Value("test", "TOKEN")
	fmt.Printf("SITE_ROOT=%s\nLIB_DIR=%s\nBASE_URL=%s\nTOKEN=%s\n", root, lib, base, token)

	// Typed view
	var db DBConfig
	if err := cfg.Scan("db", &db); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("db: %s:%d timeout=%s replicas=%v\n", db.Host, db.Port, db.Timeout, db.Replicas)

	// Ambient projection
	if err := cfg.MaterializeConstants("MAIN", nil); err != nil {
		log.Fatal(err)
	}
	if v, ok := siteconfig.Constants.Lookup("MAIN-LIB_DIR"); ok {
		fmt.Println("constant MAIN-LIB_DIR =", v)
	}
	if err := cfg.MaterializeGlobals("db", siteconfig.EnvNamespace{Prefix: "DB_"}); err != nil {
		log.Fatal(err)
	}
	fmt.Println("env DB_host =", os.Getenv("DB_host"))

	fmt.Println("--- yaml ---")
	if err := cfg.Dump(os.Stdout, siteconfig.ExportYAML); err != nil {
		log.Fatal(err)
	}

	// Watch for an edit
	w, err := siteconfig.Watch(path, siteconfig.WatchOptions{
		PollInterval: 100 * time.Millisecond,
		Debounce:     50 * time.Millisecond,
	}, siteconfig.LoadOptions{ScriptPath: "/app/index.php", Logger: logger})
	if err != nil {
		log.Fatal(err)
	}
	defer w.Stop()

	events := w.Subscribe()
	time.Sleep(150 * time.Millisecond)
	updated := siteINI + "\n[extra]\nNOTE = added later\n"
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		log.Fatal(err)
	}

	select {
	case ev := <-events:
		names, _ := w.Current().SectionNames()
		fmt.Printf("watch event %q, sections now %v\n", ev, names)
	case <-time.After(2 * time.Second):
		fmt.Println("no reload observed")
	}
}
