package legacyhost

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

// ErrInvalidManifest is returned for documents that are not ClickOnce deployment manifests
var ErrInvalidManifest = errors.New("invalid deployment manifest")

// Manifest is the part of a ClickOnce deployment manifest (.application) the host needs
type Manifest struct {
	Name           string
	Version        string
	PublicKeyToken string
	Publisher      string
	Product        string
	// Installed is false for online-only deployments, which get no uninstall entry
	Installed         bool
	ProviderCodebase  string
	ApplicationBundle string
}

// ParseManifest reads a deployment manifest
func ParseManifest(data []byte) (*Manifest, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "assembly" {
		return nil, fmt.Errorf("%w: missing assembly element", ErrInvalidManifest)
	}

	identity := root.SelectElement("assemblyIdentity")
	if identity == nil {
		return nil, fmt.Errorf("%w: missing assemblyIdentity", ErrInvalidManifest)
	}

	m := &Manifest{
		Name:           identity.SelectAttrValue("name", ""),
		Version:        identity.SelectAttrValue("version", ""),
		PublicKeyToken: identity.SelectAttrValue("publicKeyToken", ""),
	}
	if m.Name == "" {
		return nil, fmt.Errorf("%w: assemblyIdentity has no name", ErrInvalidManifest)
	}

	if description := root.SelectElement("description"); description != nil {
		m.Publisher = description.SelectAttrValue("publisher", "")
		m.Product = description.SelectAttrValue("product", "")
	}

	if deployment := root.SelectElement("deployment"); deployment != nil {
		m.Installed = deployment.SelectAttrValue("install", "false") == "true"
		if provider := deployment.SelectElement("deploymentProvider"); provider != nil {
			m.ProviderCodebase = provider.SelectAttrValue("codebase", "")
		}
	}

	for _, dependency := range root.SelectElements("dependency") {
		dependent := dependency.SelectElement("dependentAssembly")
		if dependent == nil || dependent.SelectAttrValue("dependencyType", "") != "install" {
			continue
		}
		m.ApplicationBundle = dependent.SelectAttrValue("codebase", "")
		break
	}

	return m, nil
}
