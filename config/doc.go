/*
Package config assembles the conversion layer from a setup-time
document.

The document supplies, per entity type, the namespace and set used to
build storage keys, plus the default expiration policy and the
DynamoDB table binding for the ddb repository:

	namespaces:
	  test:
	    sets:
	      VersionedDocument: docs
	      Comment: comments
	defaultExpiration: never
	dynamodb:
	  table: recordconv-test
	  region: us-east-1

BindCodec ties a parsed Config, a Descriptor and a FieldCodec into a
ready EntityCodec. Descriptor and converter-registry validation run
during binding, so an ambiguous or one-directional converter set is a
startup failure, never a first-conversion surprise.

Credentials are never part of the document; DotEnv loads a .env
overlay into the environment, matching how the ddb tests obtain AWS
credentials.
*/
package config
