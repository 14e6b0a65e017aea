package main

import (
	"context"
	"os"

	"github.com/MKhiriev/go-supa-client/internal/cli"
	"github.com/MKhiriev/go-supa-client/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	opts := cli.Options{
		BuildInfo: models.BuildInfo{Version: buildVersion, Date: buildDate, Commit: buildCommit},
	}

	if err := cli.Execute(context.Background(), opts); err != nil {
		os.Exit(1)
	}
}
