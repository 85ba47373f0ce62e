package datastructure

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/safewalk/pkg/geo"
	"github.com/lintang-b-s/safewalk/pkg/util"
)

// WriteGraph serializes the built pedestrian graph to a bzip2 compressed
// text file so warm starts can skip openstreetmap pbf parsing.
//
// format:
//
//	numNodes numEdges
//	<numNodes lines>  id lat lon
//	<numEdges lines>  from to lengthM risk wayID nGeom lat lon [lat lon ...]
func (g *Graph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "%d %d\n", len(g.nodes), g.numEdges)

	nodeIDs := make([]int64, 0, len(g.nodes))
	for id := range g.nodes {
		nodeIDs = append(nodeIDs, id)
	}
	sort.Slice(nodeIDs, func(i, j int) bool { return nodeIDs[i] < nodeIDs[j] })

	for _, id := range nodeIDs {
		n := g.nodes[id]
		fmt.Fprintf(w, "%d %s %s\n", n.ID, formatFloat(n.Lat), formatFloat(n.Lon))
	}

	for _, id := range nodeIDs {
		for _, e := range g.adjacency[id] {
			fmt.Fprintf(w, "%d %d %s %s %d %d", e.From, e.To,
				formatFloat(e.LengthM), formatFloat(e.Risk), e.WayID, len(e.Geometry))
			for _, c := range e.Geometry {
				fmt.Fprintf(w, " %s %s", formatFloat(c.Lat), formatFloat(c.Lon))
			}
			fmt.Fprintf(w, "\n")
		}
	}

	return w.Flush()
}

// ReadGraph loads a graph previously written by WriteGraph.
func ReadGraph(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	r := bufio.NewReader(bz)

	var numNodes, numEdges int
	if _, err := fmt.Fscanf(r, "%d %d\n", &numNodes, &numEdges); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "malformed graph file header %s", filename)
	}

	g := NewGraph()

	for i := 0; i < numNodes; i++ {
		fields, err := readFields(r)
		if err != nil {
			return nil, err
		}
		if len(fields) != 3 {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "malformed node line %d in %s", i, filename)
		}
		id, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, err
		}
		lat, err := util.StringToFloat64(fields[1])
		if err != nil {
			return nil, err
		}
		lon, err := util.StringToFloat64(fields[2])
		if err != nil {
			return nil, err
		}
		g.AddNode(NewGeoNode(id, lat, lon))
	}

	for i := 0; i < numEdges; i++ {
		fields, err := readFields(r)
		if err != nil {
			return nil, err
		}
		if len(fields) < 6 {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "malformed edge line %d in %s", i, filename)
		}
		from, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, err
		}
		to, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, err
		}
		lengthM, err := util.StringToFloat64(fields[2])
		if err != nil {
			return nil, err
		}
		risk, err := util.StringToFloat64(fields[3])
		if err != nil {
			return nil, err
		}
		wayID, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return nil, err
		}
		nGeom, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, err
		}
		if len(fields) != 6+2*nGeom {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "malformed edge geometry on line %d in %s", i, filename)
		}

		geometry := make([]geo.Coordinate, 0, nGeom)
		for j := 0; j < nGeom; j++ {
			lat, err := util.StringToFloat64(fields[6+2*j])
			if err != nil {
				return nil, err
			}
			lon, err := util.StringToFloat64(fields[6+2*j+1])
			if err != nil {
				return nil, err
			}
			geometry = append(geometry, geo.NewCoordinate(lat, lon))
		}

		edge := NewGraphEdge(from, to, lengthM, wayID, geometry)
		edge.Risk = risk
		if err := g.AddEdge(edge); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

func readFields(r *bufio.Reader) ([]string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	if err == io.EOF && len(strings.TrimSpace(line)) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	return strings.Fields(line), nil
}
