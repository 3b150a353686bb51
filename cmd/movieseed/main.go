package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"moviestore/catalog"
	"moviestore/pkg/config"
	"moviestore/pkg/logger"
	"moviestore/postgres"
)

func main() {
	var (
		csvPath string
		csvURL  string
		limit   int
	)

	flag.StringVar(&csvPath, "csv", "", "Path to a movies csv file")
	flag.StringVar(&csvURL, "url", "", "Download the movies csv from this url instead")
	flag.IntVar(&limit, "limit", 0, "Limit number of rows to import (0 = all)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config failed:", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{Level: cfg.Log.Level, Development: true})
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		log.Fatalw("cannot open postgres connection", "error", err)
	}

	source, err := openSource(csvPath, csvURL)
	if err != nil {
		log.Fatalw("cannot open csv", "error", err)
	}
	defer source.Close()

	imp := &importer{catalog: catalog.NewProvider(db), log: log, limit: limit}
	report, err := imp.Import(context.Background(), source)
	if err != nil {
		log.Fatalw("import failed", "error", err, "imported", report.Imported)
	}

	log.Infow("import completed",
		"imported", report.Imported,
		"duplicates", report.Duplicates,
		"invalid", report.Invalid,
		"categories", report.CategoriesCreated,
	)
}

func openSource(path, url string) (io.ReadCloser, error) {
	switch {
	case path != "":
		return os.Open(path)
	case url != "":
		client := &http.Client{Timeout: 60 * time.Second}
		resp, err := client.Get(url) // nolint: noctx
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status: %s", resp.Status)
		}
		return resp.Body, nil
	}
	return nil, errors.New("one of -csv or -url is required")
}
