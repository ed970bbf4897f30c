/*
Package yaml provides methods to parse attribute specifications, also
known as metadata, from YAML documents.
*/
package yaml

import (
	"fmt"
	"os"

	"github.com/pbanos/sapling/attribute"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadAttributes takes a slice of bytes with an attribute specification in
YAML and returns a slice of attributes parsed from it or an error.

The YAML is expected to be an object containing an attributes property.
The value for this should be an object with a property for each
attribute with its name and either the string 'continuous' for
continuous attributes, the string 'ignore' for attributes to exclude
from tree construction, or a list of valid values for discrete
attributes. Attributes are returned in document order, which is
meaningful downstream: selection ties and majority tie-breaks follow it.
*/
func ReadAttributes(md []byte) ([]attribute.Attribute, error) {
	metadata := struct {
		Attributes yaml.MapSlice
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml attributes: %v", err)
	}
	if metadata.Attributes == nil {
		return nil, fmt.Errorf("metadata file has no attribute information")
	}
	attributes := []attribute.Attribute{}
	for _, item := range metadata.Attributes {
		an := fmt.Sprintf("%v", item.Key)
		if err := attribute.CheckSerializable(an); err != nil {
			return nil, fmt.Errorf("invalid attribute name: %v", err)
		}
		switch values := item.Value.(type) {
		case string:
			switch values {
			case "continuous":
				attributes = append(attributes, attribute.NewContinuous(an))
			case "ignore":
				attributes = append(attributes, attribute.NewIgnored(an))
			default:
				return nil, fmt.Errorf("invalid declaration %q for attribute %s: expected 'continuous', 'ignore' or a value list", values, an)
			}
		case []interface{}:
			stringVs := []string{}
			for _, v := range values {
				sv := fmt.Sprintf("%v", v)
				if err := attribute.CheckSerializable(sv); err != nil {
					return nil, fmt.Errorf("invalid value for attribute %s: %v", an, err)
				}
				stringVs = append(stringVs, sv)
			}
			attributes = append(attributes, attribute.NewDiscrete(an, stringVs))
		default:
			return nil, fmt.Errorf("invalid attribute declaration of type %T", item.Value)
		}
	}
	return attributes, nil
}

/*
ReadAttributesFromFile takes a filepath string, reads its contents and
uses ReadAttributes to parse it and return a slice of parsed attributes
or an error. If the file indicated by the filepath cannot be opened for
reading an error will be returned.
*/
func ReadAttributesFromFile(filepath string) ([]attribute.Attribute, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading attributes yml file %s: %v", filepath, err)
	}
	attributes, err := ReadAttributes(md)
	if err != nil {
		err = fmt.Errorf("parsing attributes yml file %s: %v", filepath, err)
	}
	return attributes, err
}
