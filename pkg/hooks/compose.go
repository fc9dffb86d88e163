package hooks

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/arthur-debert/fastgen/pkg/values"
	"gopkg.in/yaml.v3"
)

const (
	// ComposeFileName is written at the top of the target
	ComposeFileName = "docker-compose.yml"

	composeVersion     = "3.8"
	gatewayName        = "api-gateway"
	networkName        = "app_network"
	defaultBasePort    = 3001
	defaultGatewayPort = 3000
)

var serviceNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ComposeFile is the subset of the compose format the generator writes
type ComposeFile struct {
	Version  string                    `yaml:"version"`
	Services map[string]ComposeService `yaml:"services"`
	Networks map[string]ComposeNetwork `yaml:"networks"`
}

// ComposeService is one service entry
type ComposeService struct {
	Build       string                 `yaml:"build"`
	Ports       []string               `yaml:"ports"`
	Environment map[string]interface{} `yaml:"environment"`
	Networks    []string               `yaml:"networks"`
	DependsOn   []string               `yaml:"depends_on,omitempty"`
}

// ComposeNetwork is a top-level network declaration
type ComposeNetwork struct {
	Driver string `yaml:"driver"`
}

// ComposeSpec is the validated input of the compose generator
type ComposeSpec struct {
	Services    []string
	BasePort    int
	GatewayPort int
}

// Compose writes docker-compose.yml for microservice layouts. It does
// nothing unless ARCHITECTURE is "microservices".
func Compose(ctx context.Context, hc HookContext) ([]string, error) {
	if hc.Vars.Get("ARCHITECTURE").String() != "microservices" {
		hc.Logger.Debug().Msg("Not a microservices layout, skipping compose file")
		return nil, nil
	}

	spec, err := composeSpecFromVars(hc.Vars)
	if err != nil {
		return nil, err
	}

	data, err := BuildCompose(spec)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(hc.TargetDir, ComposeFileName)
	if err := hc.FS.WriteFile(path, data, 0644); err != nil {
		return nil, hookError(ComposeHook, "write %s: %v", path, err)
	}

	hc.Logger.Info().
		Str("path", path).
		Int("services", len(spec.Services)).
		Msg("Generated compose file")
	return []string{path}, nil
}

func composeSpecFromVars(vars values.Variables) (ComposeSpec, error) {
	spec := ComposeSpec{BasePort: defaultBasePort, GatewayPort: defaultGatewayPort}

	services := vars.Get("SERVICES")
	if services.Kind() != values.KindSequence {
		return spec, hookError(ComposeHook, "SERVICES must be a list of service names, got %s", services.Kind())
	}
	for i, item := range services.Items() {
		if item.Kind() != values.KindScalar {
			return spec, hookError(ComposeHook, "service %d must be a name, got %s", i, item.Kind())
		}
		spec.Services = append(spec.Services, item.String())
	}

	var err error
	if spec.BasePort, err = portVar(vars, "SERVICE_BASE_PORT", defaultBasePort); err != nil {
		return spec, err
	}
	if spec.GatewayPort, err = portVar(vars, "GATEWAY_PORT", defaultGatewayPort); err != nil {
		return spec, err
	}
	return spec, nil
}

func portVar(vars values.Variables, name string, fallback int) (int, error) {
	v, ok := vars.Lookup(name)
	if !ok {
		return fallback, nil
	}
	port, ok := v.Int()
	if !ok {
		return 0, hookError(ComposeHook, "%s must be a number, got %q", name, v.String())
	}
	return int(port), nil
}

// Validate checks service names and the port plan
func (s ComposeSpec) Validate() error {
	seen := map[string]struct{}{gatewayName: {}}
	for _, name := range s.Services {
		if !serviceNamePattern.MatchString(name) {
			return hookError(ComposeHook, "invalid service name %q", name)
		}
		if _, dup := seen[name]; dup {
			return hookError(ComposeHook, "duplicate service name %q", name)
		}
		seen[name] = struct{}{}
	}

	if s.GatewayPort < 1 || s.GatewayPort > 65535 {
		return hookError(ComposeHook, "gateway port %d is out of range", s.GatewayPort)
	}
	if len(s.Services) == 0 {
		return nil
	}
	last := s.BasePort + len(s.Services) - 1
	if s.BasePort < 1 || last > 65535 {
		return hookError(ComposeHook, "service ports %d-%d are out of range", s.BasePort, last)
	}
	if s.GatewayPort >= s.BasePort && s.GatewayPort <= last {
		return hookError(ComposeHook, "gateway port %d collides with service ports %d-%d", s.GatewayPort, s.BasePort, last)
	}
	return nil
}

// ServicePort is the port assigned to the i-th service
func (s ComposeSpec) ServicePort(i int) int {
	return s.BasePort + i
}

// BuildCompose renders the compose document and checks it decodes back
// into the expected topology.
func BuildCompose(spec ComposeSpec) ([]byte, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	services := mapping()

	gateway := mapping(
		"build", quoted("./"+gatewayName),
		"ports", sequence(portMapping(spec.GatewayPort)),
		"environment", mapping("NODE_ENV", quoted("development")),
		"networks", sequence(quoted(networkName)),
	)
	if len(spec.Services) > 0 {
		deps := make([]*yaml.Node, len(spec.Services))
		for i, name := range spec.Services {
			deps[i] = quoted(name)
		}
		appendPair(gateway, "depends_on", sequence(deps...))
	}
	appendPair(services, gatewayName, gateway)

	for i, name := range spec.Services {
		port := spec.ServicePort(i)
		appendPair(services, name, mapping(
			"build", quoted("./services/"+name),
			"ports", sequence(portMapping(port)),
			"environment", mapping(
				"NODE_ENV", quoted("development"),
				"PORT", number(port),
			),
			"networks", sequence(quoted(networkName)),
		))
	}

	version := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: composeVersion, Style: yaml.SingleQuotedStyle}
	root := mapping(
		"version", version,
		"services", services,
		"networks", mapping(networkName, mapping("driver", quoted("bridge"))),
	)
	root.Content[0].HeadComment = "Generated Docker Compose file"

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, hookError(ComposeHook, "encode compose file: %v", err)
	}
	if err := enc.Close(); err != nil {
		return nil, hookError(ComposeHook, "encode compose file: %v", err)
	}

	if err := verifyCompose(buf.Bytes(), spec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseCompose decodes a compose document
func ParseCompose(data []byte) (*ComposeFile, error) {
	var cf ComposeFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

func verifyCompose(data []byte, spec ComposeSpec) error {
	cf, err := ParseCompose(data)
	if err != nil {
		return hookError(ComposeHook, "generated compose file does not parse: %v", err)
	}
	if len(cf.Services) != len(spec.Services)+1 {
		return hookError(ComposeHook, "generated compose file has %d services, want %d", len(cf.Services), len(spec.Services)+1)
	}
	for i, name := range spec.Services {
		svc, ok := cf.Services[name]
		want := portMappingValue(spec.ServicePort(i))
		if !ok || len(svc.Ports) != 1 || svc.Ports[0] != want {
			return hookError(ComposeHook, "generated compose file has a bad entry for %q", name)
		}
	}
	if _, ok := cf.Networks[networkName]; !ok {
		return hookError(ComposeHook, "generated compose file is missing network %q", networkName)
	}
	return nil
}

func portMappingValue(port int) string {
	return fmt.Sprintf("%d:%d", port, port)
}

func portMapping(port int) *yaml.Node {
	return quoted(portMappingValue(port))
}

func quoted(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s, Style: yaml.DoubleQuotedStyle}
}

func number(n int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(n)}
}

func key(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func sequence(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: items}
}

// mapping builds a mapping node from alternating key, value arguments
func mapping(pairs ...interface{}) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(pairs); i += 2 {
		appendPair(n, pairs[i].(string), pairs[i+1].(*yaml.Node))
	}
	return n
}

func appendPair(m *yaml.Node, k string, v *yaml.Node) {
	m.Content = append(m.Content, key(k), v)
}
