// Package i18nk lists the message ids of the embedded locale files.
package i18nk

type Key string

const (
	Welcome       Key = "app.welcome"
	ReadReadme    Key = "app.read_readme"
	ImportConfig  Key = "app.import_config"
	ConfigLoaded  Key = "app.config_loaded"
	ConfigInvalid Key = "app.config_invalid"
	SetupComplete Key = "app.setup_complete"
	InstallEngine Key = "app.install_engine"
	EngineFailed  Key = "app.engine_failed"
	Interrupted   Key = "app.interrupted"

	SetupDefaultDir      Key = "setup.default_dir"
	SetupPromptDir       Key = "setup.prompt_dir"
	SetupUseDefaultDir   Key = "setup.use_default_dir"
	SetupCreatingDir     Key = "setup.creating_dir"
	SetupDirCreated      Key = "setup.dir_created"
	SetupDirCreateFailed Key = "setup.dir_create_failed"
	SetupDirExists       Key = "setup.dir_exists"
	SetupNoDir           Key = "setup.no_dir"
	SetupCreatingIndex   Key = "setup.creating_index"
	SetupIndexCreated    Key = "setup.index_created"
	SetupIndexFailed     Key = "setup.index_failed"
	SetupIndexExists     Key = "setup.index_exists"

	CollectPlatformsHeader Key = "collect.platforms_header"
	CollectPlatformSchemes Key = "collect.platform_schemes"
	CollectPlatformsTotal  Key = "collect.platforms_total"
	CollectEnterUrls       Key = "collect.enter_urls"
	CollectPromptUrl       Key = "collect.prompt_url"
	CollectNoUrls          Key = "collect.no_urls"
	CollectNotRegistered   Key = "collect.not_registered"
	CollectMalformed       Key = "collect.malformed"
	CollectNoMatch         Key = "collect.no_match"
	CollectPlaylistAdded   Key = "collect.playlist_added"
	CollectPlaylistNotice  Key = "collect.playlist_notice"
	CollectPlaylistConfirm Key = "collect.playlist_confirm"
	CollectPlaylistRemoved Key = "collect.playlist_removed"
	CollectVideoAdded      Key = "collect.video_added"
	CollectDone            Key = "collect.done"

	DownloadStarting      Key = "download.starting"
	DownloadPlatformStart Key = "download.platform_start"
	DownloadPlatformDone  Key = "download.platform_done"
	DownloadAllDone       Key = "download.all_done"
	DownloadAttempt       Key = "download.attempt"
	DownloadAttemptList   Key = "download.attempt_playlist"
	DownloadSucceeded     Key = "download.succeeded"
	DownloadFailed        Key = "download.failed"
	DownloadIndexFailed   Key = "download.index_failed"
	DownloadStreamDone    Key = "download.stream_done"
	DownloadProgress      Key = "download.progress"
	DownloadUiDone        Key = "download.ui_done"
	DownloadUiCancel      Key = "download.ui_cancel"
)
