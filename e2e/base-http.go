package e2e

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
)

type BaseHTTPSuite struct {
	suite.Suite
	Config Config
	client *http.Client
}

// SetupSuite loads the environment configuration before running tests.
// The whole suite is skipped when no server address is configured.
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.ArchiveAddr == "" {
		s.T().Skip("ARCHIVE_ADDR is not set")
	}
	s.client = &http.Client{Timeout: 10 * time.Second}
}

// Get performs a request against the archive server and logs a colorized
// summary of the exchange.
func (s *BaseHTTPSuite) Get(name, path string) (int, string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)

	start := time.Now()
	resp, err := s.client.Get(strings.TrimRight(s.Config.ArchiveAddr, "/") + path)
	s.Require().NoError(err, "Failed to reach archive server at "+s.Config.ArchiveAddr)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	logBuilder := strings.Builder{}
	fmt.Fprintf(&logBuilder, "GET %s [%d] in %v", path, resp.StatusCode, time.Since(start))
	if s.Config.DebugBody {
		fmt.Fprintln(&logBuilder, "\nBODY:")
		fmt.Fprintln(&logBuilder, string(body))
	}
	s.T().Log(logBuilder.String())
	return resp.StatusCode, string(body)
}
