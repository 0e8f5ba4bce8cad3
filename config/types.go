package config

type AppConfig struct {
	Workers int
	Corpus  CorpusConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Scaling ScalingConfig
	Report  ReportConfig
	API     APIConfig
}

type CorpusConfig struct {
	// Source selects where the scale mode reads documents from: "fs" or "mongo".
	Source      string
	Dir         string
	RolesFile   string
	DedupIngest bool
	BatchSize   int
}

type MongoConfig struct {
	URI        string
	Local      bool
	DBName     string
	CorpusColl string
}

type RedisConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Local    bool
	SSL      bool
	Enabled  bool
}

type ScalingConfig struct {
	DBURL      string
	PoolSize   int
	Workers    int
	BatchSize  int
	StartYear  int
	EndYear    int
	AnchorLow  string
	AnchorHigh string
}

type ReportConfig struct {
	DBURL   string
	CSVPath string
}

type APIConfig struct {
	DBURL    string
	HTTPAddr string
}
