package waymark

import (
	"io"
	"io/ioutil"
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"

	"github.com/agtorre/gocolorize"
	"github.com/gestorhq/waymark/internal/watcher"
	"github.com/robfig/config"
)

const (
	WaymarkImportPath  = "github.com/gestorhq/waymark"
	defaultLoggerFlags = log.Ldate | log.Ltime | log.Lshortfile
)

type waymarkLogs struct {
	c gocolorize.Colorize
	w io.Writer
}

func (r *waymarkLogs) Write(p []byte) (n int, err error) {
	return r.w.Write([]byte(r.c.Paint(string(p))))
}

var (
	// ConfigFile specifies the path of the main configuration file relative to BasePath, e.g. "conf/app.conf"
	ConfigFile = path.Join("conf", "app.conf")
	// RoutesFile specifies the path of the bilingual route table relative to BasePath, e.g. "conf/routes"
	RoutesFile = path.Join("conf", "routes")
	// MenuFile specifies the path of the navigation menu tree relative to BasePath, e.g. "conf/menu.yaml"
	MenuFile = path.Join("conf", "menu.yaml")
	// VocabPath specifies the name of the directory holding the segment dictionary files relative to BasePath
	VocabPath = "vocab"

	Config = NewEmptyConfig()

	// App details
	AppName  = "(not set)" // e.g. "gestor"
	BasePath = "."         // e.g. "/home/dev/gestor-tables"

	RunMode = "prod"
	DevMode = false

	// Dev server config.
	HttpPort    = 9363
	HttpAddr    = ""    // e.g. "", "127.0.0.1"
	HttpSsl     = false // e.g. true if serving the table playground over TLS
	HttpSslCert = ""    // e.g. "/path/to/cert.pem"
	HttpSslKey  = ""    // e.g. "/path/to/key.pem"

	//Logger colors
	colors = map[string]gocolorize.Colorize{
		"trace": gocolorize.NewColor("magenta"),
		"info":  gocolorize.NewColor("green"),
		"warn":  gocolorize.NewColor("yellow"),
		"error": gocolorize.NewColor("red"),
	}

	// Loggers
	DisabledLogger = log.New(ioutil.Discard, "", 0)

	TRACE = DisabledLogger
	INFO  = log.New(&waymarkLogs{c: colors["info"], w: os.Stderr}, "INFO  ", defaultLoggerFlags)
	WARN  = log.New(&waymarkLogs{c: colors["warn"], w: os.Stderr}, "WARN  ", defaultLoggerFlags)
	ERROR = log.New(&waymarkLogs{c: colors["error"], w: os.Stderr}, "ERROR ", defaultLoggerFlags)

	// MainNav holds the table bundle built from the configuration under BasePath.
	MainNav *Nav
	// MainWatcher watches the configuration directories in dev mode and
	// triggers table rebuilds.
	MainWatcher *watcher.Watcher
)

func init() {
	log.SetFlags(defaultLoggerFlags)
}

// Init initializes Waymark based on runtime-loading of the config files.
//
// Params:
//   mode - the run mode, which determines which app.conf settings are used.
//   basePath - the path to the configuration and vocabulary directories
func Init(mode, basePath string) {
	RunMode = mode

	if runtime.GOOS == "windows" {
		gocolorize.SetPlain(true)
	}

	BasePath = filepath.FromSlash(basePath)

	var cfgPath string
	if filepath.IsAbs(ConfigFile) {
		cfgPath = ConfigFile
	} else {
		cfgPath = filepath.Join(BasePath, ConfigFile)
	}

	if _, err := os.Stat(cfgPath); !os.IsNotExist(err) {
		var err error
		Config, err = LoadConfig(cfgPath)
		if err != nil || Config == nil {
			log.Fatalln("Failed to load app.conf:", err)
		}
	}

	// Ensure that the selected runmode appears in app.conf.
	// If empty string is passed as the mode, treat it as "DEFAULT"
	if mode == "" {
		mode = config.DEFAULT_SECTION
	}
	if Config.HasSection(mode) {
		Config.SetSection(mode)
	}

	// Configure properties from app.conf
	DevMode = Config.BoolDefault("mode.dev", DevMode)
	HttpPort = Config.IntDefault("http.port", HttpPort)
	HttpAddr = Config.StringDefault("http.addr", HttpAddr)
	HttpSsl = Config.BoolDefault("https.enabled", HttpSsl)
	HttpSslCert = Config.StringDefault("https.certfile", HttpSslCert)
	HttpSslKey = Config.StringDefault("https.keyfile", HttpSslKey)

	if HttpSsl {
		if HttpSslCert == "" {
			log.Fatalln("No https.certfile provided.")
		}
		if HttpSslKey == "" {
			log.Fatalln("No https.keyfile provided.")
		}
	}

	AppName = Config.StringDefault("app.name", AppName)

	// Configure logging
	if !Config.BoolDefault("log.colorize", true) {
		gocolorize.SetPlain(true)
	}

	TRACE = getLogger("trace", TRACE)
	INFO = getLogger("info", INFO)
	WARN = getLogger("warn", WARN)
	ERROR = getLogger("error", ERROR)

	setup()
}

func setup() {
	nav, err := NewNav(BasePath, Config)
	if err != nil {
		ERROR.Fatalln(err.Error())
	}
	MainNav = nav

	// The "watch" config variable can turn on and off watching of the
	// configuration directories. Every rebuild is a single atomic swap of the
	// whole table bundle, so resolution never observes a half-built state.
	if Config.BoolDefault("watch", DevMode) {
		MainWatcher = watcher.New()

		roots := []string{filepath.Join(BasePath, "conf")}
		if fi, err := os.Stat(filepath.Join(BasePath, VocabPath)); err == nil && fi.IsDir() {
			roots = append(roots, filepath.Join(BasePath, VocabPath))
		}
		if err := MainWatcher.Listen(liveReloader{MainNav}, roots...); err != nil {
			WARN.Println("Unable to watch configuration:", err)
			MainWatcher = nil
		}
	}

	INFO.Printf("Initialized %s tables for %s (%d routes, %d vocabulary entries)",
		AppName, RunMode, len(MainNav.Tables().Table.Decls()), MainNav.Tables().Vocab.Len())
}

// Create a logger using log.* directives in app.conf plus the current settings
// on the default logger.
func getLogger(name string, original *log.Logger) *log.Logger {
	var logger *log.Logger

	// Create a logger with the requested output. (default to stderr)
	output := Config.StringDefault("log."+name+".output", "")

	switch output {
	case "":
		return original
	case "stdout":
		logger = newLogger(&waymarkLogs{c: colors[name], w: os.Stdout})
	case "stderr":
		logger = newLogger(&waymarkLogs{c: colors[name], w: os.Stderr})
	case "off":
		return DisabledLogger
	default:
		file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalln("Failed to open log file", output, ":", err)
		}
		logger = newLogger(file)
	}

	// Set the prefix / flags.
	flags, found := Config.Int("log." + name + ".flags")
	if found {
		logger.SetFlags(flags)
	}

	prefix, found := Config.String("log." + name + ".prefix")
	if found {
		logger.SetPrefix(prefix)
	}

	return logger
}

func newLogger(wr io.Writer) *log.Logger {
	return log.New(wr, "", defaultLoggerFlags)
}
