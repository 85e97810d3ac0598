package config

const (
	defaultConfigPath         = "~/.config/tabbatch/config.toml"
	projectConfigFile         = "tabbatch.toml"
	defaultExclusionFile      = "~/.config/tabbatch/tables/exclusion.xlsx"
	defaultMappingFile        = "~/.config/tabbatch/tables/sku_spu.xlsx"
	defaultLogDir             = "~/.local/share/tabbatch/logs"
	defaultLockFile           = "~/.local/share/tabbatch/automation.lock"
	defaultExclusionTable     = "exclusion"
	defaultMappingTable       = "sku_spu"
	defaultEditTemplate       = "http://operation.joybuy.com/product/productEdit?productId={}&refresh=1756991165572"
	defaultStorefrontTemplate = "https://www.joybuy.de/dp/{}"
	defaultTitleKeyword       = "Google Chrome"
	defaultNewWindowFlag      = "--new-window"
	defaultProcessName        = "chrome"
	defaultHeaderRows         = 1
	defaultBatchSize          = 10
	defaultMaxIdentifiers     = 50
	defaultBackspacePresses   = 20
	defaultWindowTag          = "Dominant SPU (search)"
	defaultSettleSeconds      = 6
	defaultPollAttempts       = 15
	defaultPollIntervalMS     = 1000
	defaultActivateDelayMS    = 1000
	defaultBatchPauseSeconds  = 2
	defaultWaitPerTab         = 1.75
	defaultWaitBase           = 1.5
	defaultWaitThreshold      = 6
	defaultWaitDiscount       = 1.5
	defaultWaitFloor          = 3
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"

	// Placeholder is the token replaced by an identifier in URL templates.
	Placeholder = "{}"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ExclusionFile: defaultExclusionFile,
			MappingFile:   defaultMappingFile,
			LogDir:        defaultLogDir,
			LockFile:      defaultLockFile,
		},
		Lookup: Lookup{
			ExclusionTable:      defaultExclusionTable,
			MappingTable:        defaultMappingTable,
			ExclusionHeaderRows: defaultHeaderRows,
			MappingHeaderRows:   defaultHeaderRows,
		},
		URLs: URLs{
			EditTemplate:       defaultEditTemplate,
			StorefrontTemplate: defaultStorefrontTemplate,
		},
		Browser: Browser{
			TitleKeyword:  defaultTitleKeyword,
			NewWindowFlag: defaultNewWindowFlag,
			ProcessName:   defaultProcessName,
		},
		Search: Search{
			BatchSize:         defaultBatchSize,
			MaxIdentifiers:    defaultMaxIdentifiers,
			BackspacePresses:  defaultBackspacePresses,
			WindowTag:         defaultWindowTag,
			SettleSeconds:     defaultSettleSeconds,
			PollAttempts:      defaultPollAttempts,
			PollIntervalMS:    defaultPollIntervalMS,
			ActivateDelayMS:   defaultActivateDelayMS,
			BatchPauseSeconds: defaultBatchPauseSeconds,
			WaitPerTab:        defaultWaitPerTab,
			WaitBase:          defaultWaitBase,
			WaitThreshold:     defaultWaitThreshold,
			WaitDiscount:      defaultWaitDiscount,
			WaitFloor:         defaultWaitFloor,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
