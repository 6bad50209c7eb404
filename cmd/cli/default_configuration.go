package cli

// defaultConfigurationContentConstant holds the embedded defaults merged
// below any user-provided configuration file and environment overrides.
const defaultConfigurationContentConstant = `common:
  log_level: info
  log_format: console
commands:
  run:
    timeout: 0s
    shell: false
    capture_output: true
    allow_failure: false
    encoding: utf-8
    strict_decode: false
  spawn:
    detach: false
`
