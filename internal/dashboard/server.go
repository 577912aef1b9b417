// Package dashboard serves a read-only web view of persisted run history.
package dashboard

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StartOpts holds configuration for the dashboard server.
type StartOpts struct {
	DB   *gorm.DB
	Port int
	Out  io.Writer
}

// Start launches the dashboard HTTP server. It blocks until ctx is cancelled,
// then shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.DB == nil {
		return fmt.Errorf("dashboard: db is required")
	}
	if opts.Port <= 0 {
		opts.Port = 8080
	}

	gin.SetMode(gin.ReleaseMode)
	router := NewRouter(opts.DB)

	addr := fmt.Sprintf(":%d", opts.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Dashboard running at http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

// NewRouter builds the Gin router with all dashboard routes registered.
func NewRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(template.Must(template.New("index.html").Parse(indexHTML)))

	router.GET("/", handleIndex(db))
	router.GET("/api/runs", handleRunList(db))
	router.GET("/api/runs/latest", handleLatestRun(db))
	router.GET("/api/runs/:id/status", handleRunStatus(db))
	router.GET("/api/runs/:id/notscheduled", handleRunNotScheduled(db))
	return router
}

func handleIndex(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		runs, err := ListRuns(db, 20)
		if err != nil {
			c.String(http.StatusInternalServerError, "query failed")
			return
		}
		c.HTML(http.StatusOK, "index.html", gin.H{"runs": runs})
	}
}

func handleRunList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		runs, err := ListRuns(db, 100)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, runs)
	}
}

func handleLatestRun(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		run, err := LatestRun(db)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no runs recorded"})
			return
		}
		c.JSON(http.StatusOK, run)
	}
}

func handleRunStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := RunStatus(db, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

func handleRunNotScheduled(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := RunNotScheduled(db, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>Schedule Conformance</title></head>
<body>
<h1>Schedule Conformance Runs</h1>
<table border="1" cellpadding="4">
<tr><th>Week</th><th>Weekday</th><th>Recorded</th><th></th></tr>
{{range .runs}}
<tr>
<td>{{.Week}}</td>
<td>{{.Weekday}}</td>
<td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td>
<td><a href="/api/runs/{{.ID}}/status">status</a> <a href="/api/runs/{{.ID}}/notscheduled">off-plan</a></td>
</tr>
{{end}}
</table>
</body>
</html>
`
