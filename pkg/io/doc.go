// Package io provides JSON import and export for enrichment reports.
//
// A report exported with [WriteJSON] can be re-imported with [ReadJSON] and
// rendered again without touching the network:
//
//	techdd scan ./repo --json report.json
//	techdd render report.json -o report.md
//
// # JSON Format
//
// Ecosystems are an ordered array so that the file is stable across runs
// with the same results:
//
//	{
//	  "ecosystems": [
//	    {
//	      "ecosystem": "PyPI",
//	      "packages": [
//	        {"ecosystem": "PyPI", "name": "flask", "license": "BSD-3-Clause", ...}
//	      ]
//	    }
//	  ],
//	  "license_summary": {"counts": {"BSD-3-Clause": 1}, "conflicts": []}
//	}
//
// Every ecosystem of the report appears, including those with no packages.
// The license summary is written for consumers of the file; [ReadJSON]
// ignores it and the summary is recomputed from the packages.
package io
