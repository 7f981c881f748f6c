package cliconfig

import "os"

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "FELFSHIP_"

// ApplyEnvConfig applies configuration from environment variables (FELFSHIP_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("listen", os.Getenv(EnvPrefix+"LISTEN_ADDR"), &cfg.ListenAddr)
	s.setString("controller", os.Getenv(EnvPrefix+"CONTROLLER_ADDR"), &cfg.ControllerAddr)
	s.setString("worker", os.Getenv(EnvPrefix+"WORKER_PATH"), &cfg.WorkerPath)
	s.setString("serve", os.Getenv(EnvPrefix+"SERVE_ADDR"), &cfg.ServeAddr)
	s.setString("payload", os.Getenv(EnvPrefix+"PAYLOAD_PATH"), &cfg.PayloadPath)
	s.setString("log-level", os.Getenv(EnvPrefix+"LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("max-payload-bytes", os.Getenv(EnvPrefix+"MAX_PAYLOAD_BYTES"), &cfg.MaxPayloadBytes); err != nil {
		return err
	}
	if err := s.setIntFromString("stack-size", os.Getenv(EnvPrefix+"STACK_SIZE"), &cfg.StackSize); err != nil {
		return err
	}
	return nil
}
