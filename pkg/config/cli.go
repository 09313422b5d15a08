package config

import (
	"time"

	"github.com/alecthomas/kong"
)

// Cli holds the global flags shared by every command
type Cli struct {
	Version kong.VersionFlag

	LogLevel   string `kong:"name=log-level,env=LOG_LEVEL,default=info,help='Set log level.'"`
	LogJSON    bool   `kong:"name=log-json,env=LOG_JSON,default=false,help='Enable JSON logging output.'"`
	LogCaller  bool   `kong:"name=log-caller,env=LOG_CALLER,default=false,help='Add file:line of the caller to log output.'"`
	LogNoColor bool   `kong:"name=log-nocolor,env=LOG_NOCOLOR,default=false,help='Disable colorized output.'"`

	Root    string `kong:"name=root,type=existingdir,env=UNFOLD_ROOT,default='.',help='Root directory every virtual path is relative to.'"`
	DataDir string `kong:"name=data-dir,type=path,env=UNFOLD_DATA_DIR,help='Folder holding favorites, icons and limits documents. (eg. ~/.local/share/unfold)'"`

	TarBackend     string        `kong:"name=tar-backend,env=UNFOLD_TAR_BACKEND,enum='exec,native',default=exec,help='Read tarballs through the tar binary (exec) or in-process (native).'"`
	TarBin         string        `kong:"name=tar-bin,env=UNFOLD_TAR_BIN,default=tar,help='Tar binary used by the exec backend.'"`
	TarTimeout     time.Duration `kong:"name=tar-timeout,env=UNFOLD_TAR_TIMEOUT,default=30s,help='Timeout of a single tar invocation.'"`
	MaxExtractSize int64         `kong:"name=max-extract-size,env=UNFOLD_MAX_EXTRACT_SIZE,default=104857600,help='Maximum bytes read into memory for one archive entry.'"`

	MediaURL     string `kong:"name=media-url,env=UNFOLD_MEDIA_URL,default='/api/media?path=',help='Prefix of media references returned for real media files.'"`
	StatsWorkers int    `kong:"name=stats-workers,env=UNFOLD_STATS_WORKERS,default=4,help='Subdirectories walked concurrently when computing stats.'"`
}
