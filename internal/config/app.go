package config

type AppConfig struct {
	Server   ServerConfig
	Telegram TelegramConfig
	Redis    RedisConfig
	Log      LogConfig
}

func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	serverCfg, err := LoadServer()
	if err != nil {
		return AppConfig{}, err
	}
	tgCfg, err := LoadTelegram()
	if err != nil {
		return AppConfig{}, err
	}
	redisCfg, err := LoadRedis()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		Server:   serverCfg,
		Telegram: tgCfg,
		Redis:    redisCfg,
		Log:      logCfg,
	}, nil
}
