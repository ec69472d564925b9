// Package schema provides the abstract data model that the Prisma compiler
// consumes: entities, their typed fields, and the entity-id to name lookup.
//
// The model is UI-agnostic. It is usually produced by a modeling layer and
// decoded from JSON or YAML:
//
//	entities:
//	  - id: customer
//	    name: Customer
//	    fields:
//	      - name: id
//	        dataType: Id
//	      - name: status
//	        dataType: OptionSet
//	        required: true
//	        properties:
//	          options:
//	            - { label: Active, value: Active }
//	            - { label: Inactive, value: Inactive }
//	      - name: orders
//	        dataType: Lookup
//	        properties:
//	          relatedEntityId: order
//	          allowMultipleSelection: true
//
// # Data Types
//
// Every [Field] carries a [DataType] tag from a closed enumeration and a
// [Properties] payload whose shape depends on the tag:
//
//   - OptionSet, MultiSelectOptionSet: [*OptionSetProperties]
//   - Lookup: [*LookupProperties]
//   - all other types: nil
//
// Decoding never rejects an unknown tag. Unsupported types surface as a
// compilation failure in package gen, which is where the type-to-shape
// mapping lives.
//
// # Lookups
//
// Relation fields reference their target by entity id. [EntityNames] maps
// those ids to entity names and reports missing targets explicitly:
//
//	names := schema.NewEntityNames(entities)
//	name, ok := names.Lookup("order")
package schema
