package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/crestlabs/crest-go/engine"
	"github.com/crestlabs/crest-go/runtime"
)

func main() {
	var (
		libPath     = flag.String("lib", "", "Path to the crest shared library (default: search)")
		host        = flag.String("host", "127.0.0.1", "Host to bind")
		port        = flag.Int("port", 8080, "Port to bind")
		dashboard   = flag.Bool("dashboard", false, "Enable the engine dashboard")
		title       = flag.String("title", "crest-run demo", "Dashboard title")
		list        = flag.Bool("list", false, "Resolve the library, print routes, and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose bridge logging")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			engine.SetLogger(logger)
			runtime.SetLogger(logger)
		}
	}

	if *interactive {
		cfg, err := runInteractive(*libPath, *host, *port)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if cfg == nil {
			return // aborted
		}
		*host, *port = cfg.host, cfg.port
	}

	if err := run(*libPath, *host, *port, *dashboard, *title, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(libPath, host string, port int, dashboard bool, title string, listOnly bool) error {
	eng, err := engine.Load(engine.Options{Path: libPath})
	if err != nil {
		return err
	}
	fmt.Printf("Engine: %s\n", eng.Path())

	app := runtime.New(eng)
	if err := app.Create(); err != nil {
		return err
	}
	defer app.Destroy()

	if dashboard {
		if err := app.EnableDashboard(true); err != nil {
			return err
		}
		if err := app.SetTitle(title); err != nil {
			return err
		}
	}

	if err := registerDemoRoutes(app); err != nil {
		return err
	}

	fmt.Printf("Routes: %d\n", len(app.Routes()))
	for _, r := range app.Routes() {
		fmt.Printf("  %-6s %-16s %s\n", r.Method, r.Path, r.Description)
	}

	if listOnly {
		return nil
	}

	fmt.Printf("Serving on http://%s:%d\n", host, port)
	return app.Run(host, port)
}

func registerDemoRoutes(app *runtime.App) error {
	if err := app.Get("/health", func(req *runtime.Request, res *runtime.Response) {
		res.Status(200)
		res.Send("ok")
	}, "Health check"); err != nil {
		return err
	}

	if err := app.Get("/hello/:name", func(req *runtime.Request, res *runtime.Response) {
		name, ok := req.Param("name")
		if !ok {
			name = "world"
		}
		res.Status(200)
		res.JSON(map[string]string{"hello": name})
	}, "Greeting with a path parameter"); err != nil {
		return err
	}

	if err := app.Post("/echo", func(req *runtime.Request, res *runtime.Response) {
		if ct, ok := req.Header("Content-Type"); ok {
			res.Header("Content-Type", ct)
		}
		res.Status(200)
		res.Send(req.Body())
	}, "Echo the request body"); err != nil {
		return err
	}

	return app.Get("/search", func(req *runtime.Request, res *runtime.Response) {
		q, ok := req.Query("q")
		if !ok {
			res.Status(400)
			res.JSON(map[string]string{"error": "missing query parameter q"})
			return
		}
		res.Status(200)
		res.JSON(map[string]string{"query": q})
	}, "Query parameter demo")
}
